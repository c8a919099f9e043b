package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/contacts-scraper/internal/repository"
	"github.com/user/contacts-scraper/pkg/metrics"
)

// fakeFetcher serves canned pages keyed by absolute URL and records every request.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	fails map[string]error
	calls []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: make(map[string]string),
		fails: make(map[string]error),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err, ok := f.fails[url]; ok {
		return "", err
	}
	body, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("%w: 404 Not Found for %s", repository.ErrUnexpectedStatus, url)
	}
	return body, nil
}

func (f *fakeFetcher) called(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == url {
			return true
		}
	}
	return false
}

// sleepRecorder counts pacing waits without actually sleeping.
type sleepRecorder struct {
	count int
	err   error
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.count++
	return s.err
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

var fixedNow = func() time.Time {
	return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
}

const (
	testBaseURL = "https://www.idealista.com/venta-viviendas/madrid-madrid/con-particulares/"
	testSite    = "https://www.idealista.com"
)

// searchPageHTML covers every candidate branch of the listing scraper:
// a particular, an agency, a listing without contacts, a listing without a
// link, one without an /inmueble/ id, an absolute link and a broken detail page.
const searchPageHTML = `<!DOCTYPE html>
<html><body>
<main>
<article class="item">
  <div class="item-info-container">
    <a class="item-link" href="/inmueble/111/" title="Piso en Chamberí">Piso en Chamberí</a>
    <span class="item-price h2-simulated">350.000<span class="txt-big">€</span></span>
    <span class="item-location"> Chamberí, <em>Madrid</em> </span>
    <div class="item-extra-info"><span>Particular</span></div>
  </div>
</article>
<article class="item">
  <div class="item-info-container">
    <a class="item-link" href="/inmueble/444/">Ático con terraza</a>
    <span class="item-price">520.000€</span>
    <span class="item-subtitle">Inmobiliaria XYZ</span>
  </div>
</article>
<article class="item">
  <a class="item-link" href="/inmueble/333/">Estudio sin datos</a>
  <span class="item-price">99.000€</span>
</article>
<article class="item">
  <a class="item-link">Anuncio sin enlace</a>
</article>
<article class="item">
  <a class="item-link" href="/obra-nueva/77/">Chalet obra nueva</a>
  <div class="item-price"><span>780.000€</span></div>
</article>
<article class="item">
  <a class="item-link" href="https://www.idealista.com/inmueble/555/">Dúplex en Salamanca</a>
</article>
<article class="item">
  <a class="item-link" href="/inmueble/666/">Piso con error</a>
</article>
</main>
</body></html>`

func newFakeSite() *fakeFetcher {
	f := newFakeFetcher()
	f.pages[testBaseURL] = searchPageHTML
	f.pages[testSite+"/inmueble/111/"] = `<html><body><p>Llámame al 612 34 56 78</p></body></html>`
	f.pages[testSite+"/inmueble/444/"] = `<html><body><p>Agencia: 699 99 99 99</p></body></html>`
	f.pages[testSite+"/inmueble/333/"] = `<html><body><p>Sin datos de contacto</p></body></html>`
	f.pages[testSite+"/obra-nueva/77/"] = `<html><body><div class="contact-email">ana@piso.es</div></body></html>`
	f.pages[testSite+"/inmueble/555/"] = `<html><body><span class="phone">+34 912 34 56 78</span></body></html>`
	f.fails[testSite+"/inmueble/666/"] = fmt.Errorf("%w: 500 Internal Server Error", repository.ErrUnexpectedStatus)
	return f
}
