// Package clientip resolves the real client IP of an HTTP request
// behind proxies, load balancers, and CDNs.
//
// GetIP consults headers in trust order: CF-Connecting-IP (Cloudflare),
// DO-Connecting-IP (DigitalOcean), X-Forwarded-For, then X-Real-IP,
// falling back to the connection's RemoteAddr. X-Forwarded-For lists
// "client, proxy1, proxy2"; the leftmost parseable entry wins.
//
// Every candidate is run through net.ParseIP, so malformed headers are
// skipped rather than propagated, IPv6 works everywhere, and the
// unspecified addresses (0.0.0.0, ::) are rejected. Valid results come
// back normalized via net.IP.String. When nothing parses, GetIP returns
// the raw RemoteAddr so callers always get something to log.
//
//	ip := clientip.GetIP(r)
//	if limiter.IsLimited(ip) {
//		return response.Error(response.ErrTooManyRequests)
//	}
//
// The headers are only as trustworthy as the proxy chain: make sure the
// edge strips client-supplied forwarding headers before setting its
// own, or any caller can spoof their IP.
package clientip
