package services

import (
	"fmt"
	"net/url"
	"time"

	"github.com/damianut/public-InterSynergy/internal/mailer"
	"github.com/damianut/public-InterSynergy/internal/mirror"
	"github.com/damianut/public-InterSynergy/internal/repositories"
	"github.com/damianut/public-InterSynergy/internal/storage"
)

// Flash is a single user-visible notice produced while handling a request.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Flashes collects the notices of one request. Handlers render the whole
// list with the response.
type Flashes struct {
	items []Flash
}

func (f *Flashes) Add(kind, message string) {
	f.items = append(f.items, Flash{Kind: kind, Message: message})
}

func (f *Flashes) Error(message string)  { f.Add("error", message) }
func (f *Flashes) Info(message string)   { f.Add("info", message) }
func (f *Flashes) Notice(message string) { f.Add("notice", message) }

func (f *Flashes) Items() []Flash {
	return f.items
}

func (f *Flashes) errorCount() int {
	n := 0
	for _, fl := range f.items {
		if fl.Kind == "error" {
			n++
		}
	}
	return n
}

// FlowContext bundles the collaborators every account flow needs. The
// register, login and reset handlers each embed one instead of sharing a
// base type.
type FlowContext struct {
	Users           repositories.UserRepository
	Mailer          mailer.Mailer
	Mirror          mirror.CandidateMirror
	Storage         storage.Storage
	BaseURL         string
	MaxFailedLogins int
	ReloginWindow   time.Duration

	// Now is swappable for tests; nil means time.Now.
	Now func() time.Time
}

func (f *FlowContext) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// absoluteURL builds the absolute link embedded in transactional mails,
// with the token as a query parameter.
func (f *FlowContext) absoluteURL(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", f.BaseURL, path, url.QueryEscape(token))
}
