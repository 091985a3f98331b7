package store

import (
	"fmt"
	"strings"
)

// Root collections.
const (
	UsersRoot        = "users"
	TransactionsRoot = "transactions"
)

// Path is a slash separated key path such as "transactions/u1/t1".
type Path string

// NewPath joins segments, rejecting blank segments and segments that
// contain a slash.
func NewPath(segments ...string) (Path, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("path: no segments")
	}
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("path: blank segment in %q", strings.Join(segments, "/"))
		}
		if strings.Contains(s, "/") {
			return "", fmt.Errorf("path: segment %q contains '/'", s)
		}
	}
	return Path(strings.Join(segments, "/")), nil
}

// Child returns p/key.
func (p Path) Child(key string) (Path, error) {
	return NewPath(append(p.Segments(), key)...)
}

// Parent returns the collection holding p, or "" for a root.
func (p Path) Parent() Path {
	i := strings.LastIndexByte(string(p), '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Key returns the last segment.
func (p Path) Key() string {
	i := strings.LastIndexByte(string(p), '/')
	return string(p[i+1:])
}

// Segments splits p.
func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), "/")
}

// Contains reports whether other is p or lies beneath it.
func (p Path) Contains(other Path) bool {
	return other == p || strings.HasPrefix(string(other), string(p)+"/")
}

func (p Path) String() string { return string(p) }

// UserPath is users/{userId}.
func UserPath(userID string) (Path, error) {
	return NewPath(UsersRoot, userID)
}

// TransactionsPath is transactions/{userId}.
func TransactionsPath(userID string) (Path, error) {
	return NewPath(TransactionsRoot, userID)
}

// TransactionPath is transactions/{userId}/{transactionId}.
func TransactionPath(userID, transactionID string) (Path, error) {
	return NewPath(TransactionsRoot, userID, transactionID)
}
