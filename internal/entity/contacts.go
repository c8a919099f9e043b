package entity

// ContactBundle holds the phones and e-mails found on one detail page.
type ContactBundle struct {
	Phones []string
	Emails []string
}

// EmptyContacts returns a bundle with non-nil, empty slices.
func EmptyContacts() ContactBundle {
	return ContactBundle{Phones: []string{}, Emails: []string{}}
}

func (c ContactBundle) IsEmpty() bool {
	return len(c.Phones) == 0 && len(c.Emails) == 0
}
