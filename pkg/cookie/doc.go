// Package cookie reads and writes HTTP cookies with optional HMAC signing.
//
// A [Manager] carries the attributes shared by every cookie it writes
// (path, domain, Secure, HttpOnly, SameSite). With a 32+ byte secret every
// value it writes is signed, and values it did not sign are rejected on read:
//
//	m := cookie.New(cookie.WithSecret(os.Getenv("COOKIE_SECRET")))
//	m.Write(w, "__sid", id, 0)
//	id, err := m.Read(r, "__sid")
package cookie
