// Package sitedata owns the in-memory copy of the site's projects,
// services and editable content. It is the only component that opens
// remote subscriptions or writes to the store; everything else reads the
// exposed snapshot and calls the exposed methods.
package sitedata

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mauro-rocha/portfolio-backend/internal/auth"
	"github.com/mauro-rocha/portfolio-backend/internal/cache"
	"github.com/mauro-rocha/portfolio-backend/internal/content"
	"github.com/mauro-rocha/portfolio-backend/internal/sequence"
	"github.com/mauro-rocha/portfolio-backend/internal/store"
)

// ContentPath is the singleton document holding the editable site copy.
const ContentPath = "site_content/main"

// StartMode picks when the remote subscriptions open.
type StartMode int

const (
	// StartDeferred waits for the configured delay before subscribing,
	// keeping the remote store off the first-paint path. The cache seed
	// covers the gap.
	StartDeferred StartMode = iota
	// StartImmediate subscribes right away (admin surface).
	StartImmediate
)

type Options struct {
	// DeferDelay applies to StartDeferred. Zero means a short default.
	DeferDelay time.Duration
	// MirrorSchedule is a cron spec for periodically re-writing the full
	// snapshot to the cache, covering dropped best-effort writes. Empty
	// disables the job.
	MirrorSchedule string
}

const defaultDeferDelay = 1200 * time.Millisecond

// Data is the synchronization context. Construct once, share by
// reference; state is only ever mutated here.
type Data struct {
	st      store.Store
	cache   *cache.Cache
	session *auth.Session
	alloc   *sequence.Allocator
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.RWMutex
	projects   []content.Project
	services   []content.Service
	content    content.SiteContent
	subscribed bool
	stopped    bool
	unsubs     []store.Unsubscribe
	deferTimer *time.Timer

	cron *cron.Cron
}

// New builds the context and seeds state synchronously from the cache so
// the first read is never empty when a previous run left data behind.
// st may be nil when the remote store is not configured; reads then serve
// the cached/default state and every mutation reports false.
func New(st store.Store, c *cache.Cache, s *auth.Session, opts Options) *Data {
	if opts.DeferDelay <= 0 {
		opts.DeferDelay = defaultDeferDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Data{
		st:       st,
		cache:    c,
		session:  s,
		alloc:    sequence.New(st),
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		projects: []content.Project{},
		services: []content.Service{},
		content:  content.DefaultContent(),
	}

	if snap, ok := c.Read(ctx); ok {
		d.projects = snap.Projects
		d.services = snap.Services
		d.content = snap.Content
	}

	return d
}

// Start opens the remote subscriptions, now or after the defer delay,
// and starts the periodic cache mirror when configured. Idempotent.
func (d *Data) Start(mode StartMode) {
	d.startMirrorJob()

	if mode == StartImmediate {
		d.EnsureStarted()
		return
	}

	d.mu.Lock()
	if d.subscribed || d.stopped || d.deferTimer != nil {
		d.mu.Unlock()
		return
	}
	d.deferTimer = time.AfterFunc(d.opts.DeferDelay, d.EnsureStarted)
	d.mu.Unlock()
}

// EnsureStarted opens the subscriptions immediately if they are not open
// yet. The admin surface calls this on navigation.
func (d *Data) EnsureStarted() {
	d.mu.Lock()
	if d.subscribed || d.stopped {
		d.mu.Unlock()
		return
	}
	d.subscribed = true
	if d.deferTimer != nil {
		d.deferTimer.Stop()
		d.deferTimer = nil
	}
	d.mu.Unlock()

	if d.st == nil {
		log.Printf("[warn] operation=sitedata.start message=remote store not configured, subscriptions not started")
		return
	}

	d.subscribe()
}

// Stop tears every subscription down. Late events delivered after Stop
// mutate nothing.
func (d *Data) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	if d.deferTimer != nil {
		d.deferTimer.Stop()
		d.deferTimer = nil
	}
	unsubs := d.unsubs
	d.unsubs = nil
	d.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
	if d.cron != nil {
		d.cron.Stop()
	}
	d.cancel()
}

// Projects returns a copy of the current project list, ordered by id.
func (d *Data) Projects() []content.Project {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]content.Project(nil), d.projects...)
}

// Services returns a copy of the current service list, ordered by id.
func (d *Data) Services() []content.Service {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]content.Service(nil), d.services...)
}

// Content returns the current site content, always fully populated.
func (d *Data) Content() content.SiteContent {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return copyContent(d.content)
}

// Session exposes the authentication session this context gates on.
func (d *Data) Session() *auth.Session {
	return d.session
}

func (d *Data) subscribe() {
	unsubProjects, err := d.st.SubscribeCollection(d.ctx, sequence.Projects, "id",
		func(docs []store.Document) {
			d.setProjects(decodeProjects(docs))
		},
		func(err error) {
			// A broken stream resets its own collection, nothing else.
			log.Printf("[error] operation=sitedata.projects error=%v", err)
			d.setProjects([]content.Project{})
		})
	if err != nil {
		log.Printf("[error] operation=sitedata.subscribe collection=projects error=%v", err)
	}

	unsubServices, err := d.st.SubscribeCollection(d.ctx, sequence.Services, "id",
		func(docs []store.Document) {
			d.setServices(decodeServices(docs))
		},
		func(err error) {
			log.Printf("[error] operation=sitedata.services error=%v", err)
			d.setServices([]content.Service{})
		})
	if err != nil {
		log.Printf("[error] operation=sitedata.subscribe collection=services error=%v", err)
	}

	unsubContent, err := d.st.SubscribeDocument(d.ctx, ContentPath,
		func(data map[string]any, exists bool) {
			if exists {
				d.setContent(content.Normalize(data))
			} else {
				d.setContent(content.DefaultContent())
			}
		},
		func(err error) {
			// Content falls back to the complete defaults, never to a
			// partial document.
			log.Printf("[error] operation=sitedata.content error=%v", err)
			d.setContent(content.DefaultContent())
		})
	if err != nil {
		log.Printf("[error] operation=sitedata.subscribe doc=%s error=%v", ContentPath, err)
	}

	d.mu.Lock()
	for _, u := range []store.Unsubscribe{unsubProjects, unsubServices, unsubContent} {
		if u != nil {
			d.unsubs = append(d.unsubs, u)
		}
	}
	stopped := d.stopped
	unsubs := d.unsubs
	if stopped {
		d.unsubs = nil
	}
	d.mu.Unlock()

	// Stop raced with subscribe: tear down what we just opened.
	if stopped {
		for _, u := range unsubs {
			u()
		}
	}
}

func (d *Data) setProjects(ps []content.Project) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.projects = ps
	d.mu.Unlock()
	d.mirror()
}

func (d *Data) setServices(ss []content.Service) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.services = ss
	d.mu.Unlock()
	d.mirror()
}

func (d *Data) setContent(c content.SiteContent) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.content = c
	d.mu.Unlock()
	d.mirror()
}

// mirror writes the current state to the cache, best-effort.
func (d *Data) mirror() {
	d.mu.RLock()
	snap := &cache.Snapshot{
		Projects: append([]content.Project(nil), d.projects...),
		Services: append([]content.Service(nil), d.services...),
		Content:  copyContent(d.content),
	}
	d.mu.RUnlock()

	d.cache.Write(d.ctx, snap)
}

func (d *Data) startMirrorJob() {
	if d.opts.MirrorSchedule == "" {
		return
	}

	d.mu.Lock()
	if d.cron != nil || d.stopped {
		d.mu.Unlock()
		return
	}
	d.cron = cron.New()
	d.mu.Unlock()

	if _, err := d.cron.AddFunc(d.opts.MirrorSchedule, d.mirror); err != nil {
		log.Printf("[warn] operation=sitedata.mirror schedule=%q error=%v", d.opts.MirrorSchedule, err)
		return
	}
	d.cron.Start()
}

func copyContent(c content.SiteContent) content.SiteContent {
	out := c
	out.About.Skills = append([]string(nil), c.About.Skills...)
	return out
}

func decodeProjects(docs []store.Document) []content.Project {
	out := make([]content.Project, 0, len(docs))
	for _, doc := range docs {
		var p content.Project
		decodeDoc(doc.Data, &p)
		p.ID = docID(doc)
		out = append(out, p)
	}
	return out
}

func decodeServices(docs []store.Document) []content.Service {
	out := make([]content.Service, 0, len(docs))
	for _, doc := range docs {
		var s content.Service
		decodeDoc(doc.Data, &s)
		s.ID = docID(doc)
		out = append(out, s)
	}
	return out
}

func decodeDoc(data map[string]any, dst any) {
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("[warn] operation=sitedata.decode error=%v", err)
		return
	}
	if err := json.Unmarshal(b, dst); err != nil {
		log.Printf("[warn] operation=sitedata.decode error=%v", err)
	}
}

// docID prefers the numeric id field and falls back to the document
// name, defaulting to 0 when neither is usable.
func docID(doc store.Document) int64 {
	switch v := doc.Data["id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	if n, err := strconv.ParseInt(doc.ID, 10, 64); err == nil {
		return n
	}
	return 0
}
