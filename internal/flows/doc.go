// Package flows contains the session lifecycle flow bodies — login, refresh
// rotation, logout — as dependency-struct functions with no root package
// imports. The root package owns sentinel-error mapping, metrics, and
// logging; flows own ordering and the rotation protocol.
package flows
