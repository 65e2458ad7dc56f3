package httpclient

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Doer общий интерфейс для клиентов и обёрток над ними
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// New создает http.Client с общим cookie jar для GET /questions и POST /checkanswers
func New(timeout time.Duration) (*http.Client, error) {
	const op = "httpclient.New"

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create cookie jar: %w", op, err)
	}

	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}, nil
}
