// Package httpresolver collects the raw values of an operation from an
// *http.Request, keyed the way the merger names merged properties.
//
// Values are gathered per parameter location:
//
// | Location | Source                      | Arrays                                   |
// |----------|-----------------------------|------------------------------------------|
// | path     | caller-supplied path params | as sent                                  |
// | query    | URL query                   | repeated values joined by the delimiter  |
// | header   | request headers             | repeated headers joined by the delimiter |
// | cookie   | request cookies             | as sent                                  |
// | body     | JSON or form-encoded body   | as decoded                               |
//
// Repeated query values of a multi parameter are rebuilt as name=a&name=b so
// the resolver can split them. Route matching is left to the caller, which
// passes the matched path parameters to Bind.
//
// Only the properties the body definition declares are taken from the body.
package httpresolver
