package session

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/wsargent/toodledo/internal/domain"
)

type contextList struct {
	XMLName  xml.Name `xml:"contexts"`
	Contexts []struct {
		ID   int64  `xml:"id,attr"`
		Name string `xml:",chardata"`
	} `xml:"context"`
}

// GetContexts returns all contexts, from cache unless it is empty or
// refresh is set.
func (s *Session) GetContexts(ctx context.Context, refresh bool) ([]*domain.Context, error) {
	if s.contexts.populated() && !refresh {
		return s.contexts.list, nil
	}

	body, err := s.call(ctx, "getContexts", nil, true)
	if err != nil {
		return nil, err
	}

	var payload contextList
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse getContexts response: %v", domain.ErrServer, err)
	}

	contexts := make([]*domain.Context, 0, len(payload.Contexts))
	for _, c := range payload.Contexts {
		contexts = append(contexts, &domain.Context{ID: c.ID, Name: c.Name})
	}

	s.contexts.replace(contexts,
		func(c *domain.Context) int64 { return c.ID },
		func(c *domain.Context) string { return c.Name })
	return contexts, nil
}

func (s *Session) GetContextByID(ctx context.Context, id int64) (*domain.Context, error) {
	if !s.contexts.populated() {
		if _, err := s.GetContexts(ctx, true); err != nil {
			return nil, err
		}
	}
	c, ok := s.contexts.find(id)
	if !ok {
		return nil, fmt.Errorf("%w: no context found with id %d", domain.ErrItemNotFound, id)
	}
	return c, nil
}

// GetContextByName matches case-insensitively.
func (s *Session) GetContextByName(ctx context.Context, name string) (*domain.Context, error) {
	if !s.contexts.populated() {
		if _, err := s.GetContexts(ctx, true); err != nil {
			return nil, err
		}
	}
	c, ok := s.contexts.findName(name)
	if !ok {
		return nil, fmt.Errorf("%w: no context found with name %q", domain.ErrItemNotFound, name)
	}
	return c, nil
}

// AddContext creates a context and returns its server-assigned id.
func (s *Session) AddContext(ctx context.Context, title string) (int64, error) {
	if title == "" {
		return 0, fmt.Errorf("%w: empty context title", domain.ErrConfiguration)
	}

	body, err := s.call(ctx, "addContext", map[string]string{"title": title}, true)
	if err != nil {
		return 0, err
	}

	id, err := rootID(body)
	if err != nil {
		return 0, err
	}
	s.FlushContexts()
	return id, nil
}

// EditContext renames a context.
func (s *Session) EditContext(ctx context.Context, id int64, title string) error {
	if title == "" {
		return fmt.Errorf("%w: empty context title", domain.ErrConfiguration)
	}

	body, err := s.call(ctx, "editContext", map[string]string{"id": formatID(id), "title": title}, true)
	if err != nil {
		return err
	}
	if err := rootOK(body, "editContext"); err != nil {
		return err
	}
	s.FlushContexts()
	return nil
}

func (s *Session) DeleteContext(ctx context.Context, id int64) error {
	body, err := s.call(ctx, "deleteContext", map[string]string{"id": formatID(id)}, true)
	if err != nil {
		return err
	}
	if err := rootOK(body, "deleteContext"); err != nil {
		return err
	}
	s.FlushContexts()
	return nil
}

// FlushContexts clears the context cache.
func (s *Session) FlushContexts() {
	s.contexts.clear()
}
