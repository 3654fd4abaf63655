package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"campdir/internal/domain/entity"
	repo "campdir/internal/domain/repository"
	"campdir/internal/query"
	"campdir/pkg/apperr"
	"campdir/pkg/geocoder"
	"campdir/pkg/helpers"
)

// earthRadiusMiles converts a search distance in miles to a central angle in
// radians for the spherical radius query.
const earthRadiusMiles = 3963.0

type BootcampService struct {
	Repo     repo.BootcampRepository
	Geocoder *geocoder.Client

	GCS       *storage.Client
	GCSBucket string
	MaxUpload int64

	ES      *elasticsearch.Client
	ESIndex string

	Logger *logrus.Logger
}

type CreateBootcampInput struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Address       string   `json:"address" binding:"required"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Careers       []string `json:"careers" binding:"required,min=1,dive,career"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

// UpdateBootcampInput carries a partial update; nil fields are left alone.
// Sending a new address re-geocodes the location.
type UpdateBootcampInput struct {
	Name          *string  `json:"name" binding:"omitempty,max=50"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	Address       *string  `json:"address"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Website       *string  `json:"website" binding:"omitempty,url"`
	Careers       []string `json:"careers" binding:"omitempty,min=1,dive,career"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

func (s *BootcampService) List(ctx context.Context, opts *query.Options) ([]*entity.Bootcamp, int, error) {
	return s.Repo.List(ctx, opts, true)
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create publishes a bootcamp for the actor. Non-admin publishers are limited
// to a single bootcamp; the submitted address is geocoded and replaced by the
// derived location.
func (s *BootcampService) Create(ctx context.Context, actor Actor, in *CreateBootcampInput) (*entity.Bootcamp, error) {
	if !actor.IsAdmin() {
		existing, err := s.Repo.GetByOwner(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.New(apperr.Conflict, "the user with id %s has already published a bootcamp", actor.ID)
		}
	}

	loc, err := s.Geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, apperr.Wrap(apperr.External, err, "could not geocode address")
	}

	b := &entity.Bootcamp{
		Name:          in.Name,
		Slug:          entity.Slugify(in.Name),
		Description:   in.Description,
		Email:         in.Email,
		Website:       in.Website,
		Careers:       in.Careers,
		Location:      locationOf(loc),
		Photo:         "no-photo.jpg",
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGi:      in.AcceptGi,
		UserID:        actor.ID,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.indexBootcamp(ctx, b)
	return b, nil
}

func (s *BootcampService) Update(ctx context.Context, actor Actor, id string, in *UpdateBootcampInput) (*entity.Bootcamp, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanModify(actor, b.UserID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		b.Name = *in.Name
		b.Slug = entity.Slugify(*in.Name)
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Email != nil {
		b.Email = *in.Email
	}
	if in.Website != nil {
		b.Website = *in.Website
	}
	if in.Careers != nil {
		b.Careers = in.Careers
	}
	if in.Housing != nil {
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		b.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGi != nil {
		b.AcceptGi = *in.AcceptGi
	}
	if in.Address != nil && strings.TrimSpace(*in.Address) != "" {
		loc, err := s.Geocoder.Geocode(ctx, *in.Address)
		if err != nil {
			return nil, apperr.Wrap(apperr.External, err, "could not geocode address")
		}
		b.Location = locationOf(loc)
	}

	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.indexBootcamp(ctx, b)
	return b, nil
}

// Delete removes the bootcamp along with its courses and reviews.
func (s *BootcampService) Delete(ctx context.Context, actor Actor, id string) error {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := CanModify(actor, b.UserID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.deindexBootcamp(ctx, id)
	return nil
}

// UploadPhoto stores an image for the bootcamp under a deterministic object
// name derived from the bootcamp id, so re-uploads overwrite the previous one.
func (s *BootcampService) UploadPhoto(ctx context.Context, actor Actor, id, filename, contentType string, size int64, r io.Reader) (string, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := CanModify(actor, b.UserID); err != nil {
		return "", err
	}

	if !strings.HasPrefix(contentType, "image") {
		return "", apperr.New(apperr.Validation, "please upload an image file")
	}
	if size > s.MaxUpload {
		return "", apperr.New(apperr.Validation, "please upload an image less than %d bytes", s.MaxUpload)
	}

	name := fmt.Sprintf("photo_%s%s", b.ID, strings.ToLower(filepath.Ext(filename)))
	objectPath := "photos/" + name
	if _, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r); err != nil {
		return "", apperr.Wrap(apperr.External, err, "problem with file upload")
	}

	if err := s.Repo.UpdatePhoto(ctx, id, name); err != nil {
		return "", err
	}
	return name, nil
}

// Radius finds bootcamps within distance miles of the zipcode's location.
func (s *BootcampService) Radius(ctx context.Context, zipcode string, distance float64) ([]*entity.Bootcamp, error) {
	if distance <= 0 {
		return nil, apperr.New(apperr.Validation, "distance must be a positive number")
	}
	loc, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, apperr.Wrap(apperr.External, err, "could not geocode zipcode")
	}
	return s.Repo.WithinRadius(ctx, loc.Latitude, loc.Longitude, distance/earthRadiusMiles)
}

// Search runs a full-text query over the bootcamp index.
func (s *BootcampService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "careers", "city"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.External, err, "search is unavailable")
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.External, err, "search is unavailable")
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		doc := h.Source
		if doc == nil {
			doc = map[string]any{}
		}
		doc["id"] = h.ID
		out = append(out, doc)
	}
	return out, nil
}

// indexBootcamp mirrors the searchable slice of a bootcamp into Elasticsearch.
// Indexing is best-effort; failures are logged and never surface to the caller.
func (s *BootcampService) indexBootcamp(ctx context.Context, b *entity.Bootcamp) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          b.ID,
		"name":        b.Name,
		"slug":        b.Slug,
		"description": b.Description,
		"careers":     b.Careers,
		"city":        b.Location.City,
		"state":       b.Location.State,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
	}
	raw, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: b.ID, Body: strings.NewReader(string(raw)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("bootcamp_id", b.ID).Warn("es index response error")
	}
}

func (s *BootcampService) deindexBootcamp(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func locationOf(loc *geocoder.Location) entity.Location {
	return entity.Location{
		Type:             "Point",
		Coordinates:      []float64{loc.Longitude, loc.Latitude},
		FormattedAddress: loc.FormattedAddress,
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.Zipcode,
		Country:          loc.Country,
	}
}
