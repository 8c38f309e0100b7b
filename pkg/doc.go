// Package pkg provides the core libraries for Penman, a translation relay
// and handwriting renderer.
//
// # Overview
//
// Penman takes text, optionally translates it through the MyMemory API, and
// draws it onto a handwriting canvas that can be exported as a PNG or a
// paginated PDF. The pkg directory is organized into four areas:
//
//  1. Translation: [translate], [languages], [styles]
//  2. Rendering: [fonts], [render], [render/sink]
//  3. Accounts: [auth], [users], [session], [client]
//  4. Infrastructure: [cache], [config], [errors], [httputil], [observability]
//
// # Architecture
//
// The typical data flow through Penman:
//
//	Text + language pair
//	         ↓
//	    [translate] Relay (cache lookup → MyMemory with retries)
//	         ↓
//	    [render] Renderer (wrap to width → draw on transparent canvas)
//	         ↓
//	    [render/sink] (PNG, or A4 pages → PDF)
//
// # Quick Start
//
// Translate and render a page:
//
//	relay := translate.NewRelay(translate.NewMyMemory(translate.MyMemoryConfig{}), translate.RelayOptions{})
//	res, _ := relay.Translate(ctx, translate.Request{
//	    Text:       "Good morning",
//	    SourceLang: "en",
//	    TargetLang: "fr",
//	})
//
//	face, _ := fonts.DefaultFace(render.DefaultFontSize)
//	img, _ := render.New(render.DefaultOptions()).Render(ctx, render.Request{
//	    Text: res.TranslatedText,
//	    Face: face,
//	})
//	pdf, pages, _ := sink.RenderPDF(img, sink.A4())
//
// # Main Packages
//
// ## Translation
//
// [translate] - The relay in front of the MyMemory API. Retries timeouts and
// rate limits with exponential backoff (1s, 2s, 4s) and caches results.
//
// [languages] - The offered language codes and BCP 47 validation.
//
// [styles] - Handwriting style descriptors mapping ids to font families.
//
// ## Rendering
//
// [fonts] - TTF/OTF loading and the bundled default face.
//
// [render] - Word wrapping and canvas drawing.
//
// [render/sink] - PNG encoding, A4 pagination and PDF assembly.
//
// ## Accounts
//
// [auth] - bcrypt password hashing, JWT issuing and the register/login gateway.
//
// [users] - User persistence with memory and MongoDB backends.
//
// [session] - File-backed session storage for the CLI.
//
// [client] - Go client for the penman HTTP API.
//
// ## Infrastructure
//
// [cache] - Translation caches: file (CLI), Redis (server) and null.
//
// [config] - TOML and environment configuration.
//
// [errors] - Coded errors, provider errors and input validation.
//
// [httputil] - Retry policies.
//
// [observability] - Hooks for translation, cache, HTTP and render events.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/render/...             # Specific package
//	go test -tags integration ./pkg/...  # Include MongoDB integration tests
//
// [translate]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/translate
// [languages]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/languages
// [styles]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/styles
// [fonts]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/render/sink
// [auth]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/auth
// [users]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/users
// [session]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/session
// [client]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/client
// [cache]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/penman/pkg/observability
package pkg
