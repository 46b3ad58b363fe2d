package convolveme

import (
	"fmt"
	"image"
	"sync"
)

// Host is the environment an image is displayed in.
type Host interface {
	// Source returns the current pixels of the image, sized to its displayed dimensions.
	Source() (image.Image, error)
	// NewSurface creates a drawable surface of the given dimensions.
	NewSurface(width, height int) (Surface, error)
	// Replace puts the surface in place of the image and detaches the image.
	Replace(s Surface) error
	// OnHover registers the pointer enter and leave handlers.
	OnHover(enter, leave func())
}

// Bind filters the image of host and replaces it with a surface showing the
// result according to opts. On error the host is left untouched.
func Bind(host Host, opts Options) (*Session, error) {
	// Reject a bad kernel before touching any pixel.
	if _, err := opts.kernel(); err != nil {
		return nil, err
	}
	if host == nil {
		return nil, fmt.Errorf("%w: nil host", ErrBufferSize)
	}
	img, err := host.Source()
	if err != nil {
		return nil, fmt.Errorf("convolveme: read source: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: host returned no image", ErrBufferSize)
	}
	src := FromImage(img)

	surface, err := host.NewSurface(src.Width(), src.Height())
	if err != nil {
		return nil, fmt.Errorf("convolveme: create surface: %w", err)
	}
	sess, err := NewSession(src, surface, opts)
	if err != nil {
		return nil, err
	}
	if err := host.Replace(surface); err != nil {
		sess.Close()
		Logger().Warn("binding rolled back", "error", err)
		return nil, fmt.Errorf("convolveme: replace image: %w", err)
	}

	if !opts.Permanent {
		host.OnHover(
			func() {
				if err := sess.Enter(); err != nil {
					Logger().Warn("pointer enter", "error", err)
				}
			},
			func() {
				if err := sess.Leave(); err != nil {
					Logger().Warn("pointer leave", "error", err)
				}
			},
		)
	}
	return sess, nil
}

// Registry associates bound elements with their sessions.
// It is safe for concurrent use; sessions of different keys are created in parallel.
type Registry[K comparable] struct {
	mu       sync.Mutex
	sessions map[K]*Session
	pending  map[K]struct{} // keys being bound
}

// NewRegistry returns an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{
		sessions: make(map[K]*Session),
		pending:  make(map[K]struct{}),
	}
}

// Bind binds host and records the session under key.
// The key is reserved before host is touched, so a conflicting call fails
// without detaching its element.
func (r *Registry[K]) Bind(key K, host Host, opts Options) (*Session, error) {
	if err := r.reserve(key); err != nil {
		return nil, err
	}
	sess, err := Bind(host, opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, key)
	if err != nil {
		return nil, err
	}
	r.sessions[key] = sess
	return sess, nil
}

func (r *Registry[K]) reserve(key K) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, bound := r.sessions[key]
	_, binding := r.pending[key]
	if bound || binding {
		return fmt.Errorf("%w: %v", ErrAlreadyBound, key)
	}
	r.pending[key] = struct{}{}
	return nil
}

// Lookup returns the session bound to key.
func (r *Registry[K]) Lookup(key K) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[key]
	return sess, ok
}

// Unbind closes and forgets the session of key. It reports whether one existed.
func (r *Registry[K]) Unbind(key K) bool {
	r.mu.Lock()
	sess, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()

	if ok {
		sess.Close()
	}
	return ok
}

// Len returns the number of bound sessions.
func (r *Registry[K]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
