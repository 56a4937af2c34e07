package main

import (
	"fmt"
	"net/url"

	"github.com/courtside/scout"
	"github.com/courtside/scout/eventsource"
	"github.com/courtside/scout/httpsse"
)

// resolveDial selects the transport adapter. An explicit -transport
// flag wins; otherwise the URL scheme decides. The API key value is
// passed in so env is only read in main.
func resolveDial(rawURL, transportFlag, apiKey string) (scout.Dial, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	name := transportFlag
	if name == "" {
		switch u.Scheme {
		case "http", "https":
			name = "http"
		case "ws", "wss":
			name = "ws"
		default:
			return nil, fmt.Errorf("cannot detect transport from scheme %q: use -transport", u.Scheme)
		}
	}

	switch name {
	case "http":
		return func() scout.Transport {
			var opts []httpsse.Option
			if apiKey != "" {
				opts = append(opts, httpsse.WithHeader("Authorization", "Bearer "+apiKey))
			}
			return httpsse.New(rawURL, opts...)
		}, nil
	case "ws":
		return func() scout.Transport {
			var opts []eventsource.Option
			if apiKey != "" {
				opts = append(opts, eventsource.WithHeader("Authorization", "Bearer "+apiKey))
			}
			return eventsource.New(rawURL, opts...)
		}, nil
	default:
		return nil, fmt.Errorf("unknown transport %q (want http or ws)", name)
	}
}
