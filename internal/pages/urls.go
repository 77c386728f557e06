package pages

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLResolver builds the public URL of a page.
type URLResolver interface {
	PageURL(page *Page) (string, error)
}

// URLKitResolverOptions configures the go-urlkit backed resolver. Group may
// be a dotted path to a nested group ("frontend.es").
type URLKitResolverOptions struct {
	Manager   *urlkit.RouteManager
	Group     string
	Route     string
	SlugParam string
}

// URLKitResolver resolves page URLs using a go-urlkit RouteManager.
type URLKitResolver struct {
	manager   *urlkit.RouteManager
	group     string
	route     string
	slugParam string

	mu         sync.RWMutex
	groupCache map[string]*urlkit.Group
}

func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	if opts.Route == "" {
		opts.Route = "page"
	}
	return &URLKitResolver{
		manager:    opts.Manager,
		group:      strings.TrimSpace(opts.Group),
		route:      strings.TrimSpace(opts.Route),
		slugParam:  opts.SlugParam,
		groupCache: make(map[string]*urlkit.Group),
	}
}

// PageURL returns "" when no manager or group is configured.
func (r *URLKitResolver) PageURL(page *Page) (string, error) {
	if r == nil || r.manager == nil || r.group == "" || page == nil {
		return "", nil
	}
	group, err := r.groupForPath(r.group)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}
	builder.WithParam(r.slugParam, page.Slug)
	return builder.Build()
}

func (r *URLKitResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pages: urlkit builder panic: %v", rec)
		}
	}()
	return group.Builder(route), nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pages: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pages: child group %q not found", name)
		}
	}()
	return parent.Group(name), nil
}
