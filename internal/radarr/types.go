package radarr

import (
	"encoding/json"
	"fmt"
)

// Rating is one entry of a movie's ratings mapping.
type Rating struct {
	Votes int     `json:"votes,omitempty"`
	Value float64 `json:"value"`
	Type  string  `json:"type,omitempty"`
}

// Movie is one Radarr movie record. Only the fields this tool reads are
// modeled; the complete JSON object is retained so updates can send the
// full record back without losing fields Radarr expects.
type Movie struct {
	ID             int64
	Title          string
	FolderName     string
	Path           string
	RootFolderPath string
	Ratings        map[string]Rating

	qualityName string
	raw         map[string]json.RawMessage
}

// qualityName tolerates both the v3 shape {"name": "..."} and a bare
// string, which older payloads carry.
type qualityName string

func (q *qualityName) UnmarshalJSON(data []byte) error {
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*q = qualityName(obj.Name)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode quality: %w", err)
	}
	*q = qualityName(s)
	return nil
}

// movieFields is the decoded subset of a movie record.
type movieFields struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	FolderName     string            `json:"folderName"`
	Path           string            `json:"path"`
	RootFolderPath string            `json:"rootFolderPath"`
	Ratings        map[string]Rating `json:"ratings"`
	MovieFile      *struct {
		Quality struct {
			Quality qualityName `json:"quality"`
		} `json:"quality"`
	} `json:"movieFile"`
}

// UnmarshalJSON decodes the modeled fields and keeps the raw object.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode movie: %w", err)
	}

	var fields movieFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode movie: %w", err)
	}

	m.ID = fields.ID
	m.Title = fields.Title
	m.FolderName = fields.FolderName
	m.Path = fields.Path
	m.RootFolderPath = fields.RootFolderPath
	m.Ratings = fields.Ratings
	if fields.MovieFile != nil {
		m.qualityName = string(fields.MovieFile.Quality.Quality)
	}
	m.raw = raw
	return nil
}

// QualityName returns the movie file's quality name, or "" when the
// movie has no file.
func (m *Movie) QualityName() string {
	return m.qualityName
}

// updateBody returns the complete record with folderName and path
// overwritten to newPath. Radarr requires the full object on PUT;
// a partial object silently drops the missing fields.
func (m *Movie) updateBody(newPath string) ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(m.raw))
	for k, v := range m.raw {
		obj[k] = v
	}

	p, err := json.Marshal(newPath)
	if err != nil {
		return nil, fmt.Errorf("encode path: %w", err)
	}
	obj["folderName"] = p
	obj["path"] = p

	body, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode movie: %w", err)
	}
	return body, nil
}

// SystemStatus is the subset of GET /api/v3/system/status this tool reads.
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}
