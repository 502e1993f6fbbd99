package echomw

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// OCR is expensive, so uploads are limited per client IP.
var (
	clients   = make(map[string]*rate.Limiter)
	mu        sync.Mutex
	rateLimit = DefaultValueConfig().MiddlewareRateLimit // requests per second
	burst     = DefaultValueConfig().MiddlewareBurst     // requests allowed instantly
)

func UpdateRateLimits(rateLimitInput, burstInput int) {
	mu.Lock()
	defer mu.Unlock()
	rateLimit = rateLimitInput
	burst = burstInput
	// drop limiters built with the old values
	clients = make(map[string]*rate.Limiter)
}

// getLimiter returns the rate limiter for the given IP address.
func getLimiter(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	limiter, exists := clients[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), burst)
		clients[ip] = limiter

		// Clean up old limiters every minute
		go func() {
			time.Sleep(time.Minute)
			mu.Lock()
			if clients[ip] == limiter {
				delete(clients, ip)
			}
			mu.Unlock()
		}()
	}
	return limiter
}

// Custom rate limiting middleware based on client IP address
func RateLimiterMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		limiter := getLimiter(c.RealIP())

		if !limiter.Allow() {
			LogRouteAccess(c, tl.Warning, "Rate limited", palette.Yellow)
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "too many requests",
			})
		}
		return next(c)
	}
}
