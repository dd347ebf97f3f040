package session

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/wsargent/toodledo/internal/domain"
)

type folderList struct {
	XMLName xml.Name `xml:"folders"`
	Folders []struct {
		ID       int64  `xml:"id,attr"`
		Private  int    `xml:"private,attr"`
		Archived int    `xml:"archived,attr"`
		Name     string `xml:",chardata"`
	} `xml:"folder"`
}

// GetFolders returns all folders, from cache unless it is empty or refresh
// is set. A fetch rebuilds the list and both indices atomically.
func (s *Session) GetFolders(ctx context.Context, refresh bool) ([]*domain.Folder, error) {
	if s.folders.populated() && !refresh {
		return s.folders.list, nil
	}

	body, err := s.call(ctx, "getFolders", nil, true)
	if err != nil {
		return nil, err
	}

	var payload folderList
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse getFolders response: %v", domain.ErrServer, err)
	}

	folders := make([]*domain.Folder, 0, len(payload.Folders))
	for _, f := range payload.Folders {
		folders = append(folders, &domain.Folder{
			ID:       f.ID,
			Name:     f.Name,
			Private:  f.Private == 1,
			Archived: f.Archived == 1,
		})
	}

	s.folders.replace(folders,
		func(f *domain.Folder) int64 { return f.ID },
		func(f *domain.Folder) string { return f.Name })
	return folders, nil
}

// GetFolderByID returns the folder with the given id, fetching the cache if
// it is empty.
func (s *Session) GetFolderByID(ctx context.Context, id int64) (*domain.Folder, error) {
	if !s.folders.populated() {
		if _, err := s.GetFolders(ctx, true); err != nil {
			return nil, err
		}
	}
	folder, ok := s.folders.find(id)
	if !ok {
		return nil, fmt.Errorf("%w: no folder found with id %d", domain.ErrItemNotFound, id)
	}
	return folder, nil
}

// GetFolderByName returns the folder with the given name, case-insensitively.
func (s *Session) GetFolderByName(ctx context.Context, name string) (*domain.Folder, error) {
	if !s.folders.populated() {
		if _, err := s.GetFolders(ctx, true); err != nil {
			return nil, err
		}
	}
	folder, ok := s.folders.findName(name)
	if !ok {
		return nil, fmt.Errorf("%w: no folder found with name %q", domain.ErrItemNotFound, name)
	}
	return folder, nil
}

// AddFolder creates a folder and returns its server-assigned id.
func (s *Session) AddFolder(ctx context.Context, title string, private bool) (int64, error) {
	if title == "" {
		return 0, fmt.Errorf("%w: empty folder title", domain.ErrConfiguration)
	}

	params := map[string]string{"title": title, "private": "0"}
	if private {
		params["private"] = "1"
	}

	body, err := s.call(ctx, "addFolder", params, true)
	if err != nil {
		return 0, err
	}

	id, err := rootID(body)
	if err != nil {
		return 0, err
	}
	s.FlushFolders()
	return id, nil
}

// EditFolder updates a folder. Recognized params: title (string), private
// and archived (boolean).
func (s *Session) EditFolder(ctx context.Context, id int64, params Params) error {
	wire, err := s.marshal(ctx, params, folderEditFields)
	if err != nil {
		return err
	}
	wire["id"] = formatID(id)

	body, err := s.call(ctx, "editFolder", wire, true)
	if err != nil {
		return err
	}
	if err := rootOK(body, "editFolder"); err != nil {
		return err
	}
	s.FlushFolders()
	return nil
}

// DeleteFolder removes the folder with the given id.
func (s *Session) DeleteFolder(ctx context.Context, id int64) error {
	body, err := s.call(ctx, "deleteFolder", map[string]string{"id": formatID(id)}, true)
	if err != nil {
		return err
	}
	if err := rootOK(body, "deleteFolder"); err != nil {
		return err
	}
	s.FlushFolders()
	return nil
}

// FlushFolders clears the folder cache; the next read fetches fresh data.
func (s *Session) FlushFolders() {
	s.folders.clear()
}
