// Package translate relays translation requests to an upstream provider.
//
// A [Relay] validates the request, consults a [cache.Cache], calls the
// [Provider] and retries transient failures (timeouts and HTTP 429) with
// exponential backoff. The result carries the CSS font family for the
// requested handwriting style so callers can display the text without a
// second lookup.
//
//	relay := translate.NewRelay(translate.NewMyMemory(translate.MyMemoryConfig{}), translate.RelayOptions{})
//	res, err := relay.Translate(ctx, translate.Request{
//	    Text:       "hello",
//	    SourceLang: "en",
//	    TargetLang: "es",
//	    Style:      "caveat",
//	})
//
// Provider failures surface as [errors.ProviderError] so that the HTTP
// layer can echo the upstream status code.
package translate
