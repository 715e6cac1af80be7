// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Public contracts of the linearbuf library: the stream buffer surface
// shared by the mirror-mapped ring and the compacting buffer, and the
// structured error taxonomy of the one-time storage acquisition.
package api
