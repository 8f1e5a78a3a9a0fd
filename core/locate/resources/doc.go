/*
Package resources resolves fonts and their metrics for fallback generation.

As resource loading may be a time-consuming task, some functions in this
package will work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed, or until a context is cancelled.

Fonts are searched as files, as system fonts, and finally in the directory of
the Google Fonts service. Downloaded fonts are kept in the user's cache
directory. Accessing Google Fonts requires an API key, configured as
"google-api-key" or set in environment variable GOOGLE_API_KEY.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontfallback.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontfallback.resources")
}
