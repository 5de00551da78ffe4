package server

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

// ConnectionLimiter caps the number of concurrent sessions per remote IP.
// A limit of zero or less disables the cap.
type ConnectionLimiter struct {
	limit  int
	logger *log.Logger

	mu     sync.Mutex
	counts map[string]int
}

func NewConnectionLimiter(limit int, logger *log.Logger) *ConnectionLimiter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ConnectionLimiter{
		limit:  limit,
		logger: logger,
		counts: make(map[string]int),
	}
}

// Acquire takes a slot for ip. It reports false, and takes nothing, when
// the ip is already at the limit.
func (l *ConnectionLimiter) Acquire(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit > 0 && l.counts[ip] >= l.limit {
		return false
	}
	l.counts[ip]++
	return true
}

func (l *ConnectionLimiter) Release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[ip]--
	if l.counts[ip] <= 0 {
		delete(l.counts, ip)
	}
}

func (l *ConnectionLimiter) Count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[ip]
}

func remoteIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// Middleware rejects sessions from IPs that are at the limit.
func (l *ConnectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s)

		if !l.Acquire(ip) {
			l.logger.Warn("connection denied: IP limit exceeded", "ip", ip, "limit", l.limit)
			fmt.Fprintf(s, "Too many active connections from your IP (limit %d). Please try again later.\r\n", l.limit)
			_ = s.Exit(1)
			return
		}
		defer func() {
			l.Release(ip)
			l.logger.Info("connection closed", "ip", ip, "count_after", l.Count(ip))
		}()

		l.logger.Info("connection accepted", "ip", ip, "current_count", l.Count(ip), "limit", l.limit)
		next(s)
	}
}
