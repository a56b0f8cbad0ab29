// Package session implements a database-backed session store with
// inactivity expiry.
//
// A [Manager] owns the [Store], the id [Transport] (a cookie by default) and
// the TTL. Each request gets its own [Session]:
//
//	m := session.NewManager(session.NewSQLStore(conn))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		s := m.Session(w, r)
//		s.Start(r.Context())
//		if !s.IsLoggedIn() {
//			...
//		}
//		s.Set("theme", "dark")
//		s.Update(r.Context())
//	}
//
// # Expiry
//
// Every Start deletes records whose last activity is older than the TTL
// (one hour by default) before looking up the client's session. A
// [Sweeper] can additionally collect on a cron schedule.
//
// # Persistence failures
//
// Store errors never reach the caller. They are logged and the session
// behaves as if the record did not exist.
package session
