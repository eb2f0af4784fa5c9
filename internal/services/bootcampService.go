package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/devcamper/api/internal/geocoder"
	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/repo"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BootcampStore is the persistence surface the bootcamp service needs.
// *repo.BootcampRepo implements it; tests substitute a fake.
type BootcampStore interface {
	Insert(ctx context.Context, b *models.Bootcamp) error
	Update(ctx context.Context, b *models.Bootcamp) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error)
	FindAll(ctx context.Context) ([]models.Bootcamp, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetAverageRating(ctx context.Context, id primitive.ObjectID, avg *float64) error
	SetAverageCost(ctx context.Context, id primitive.ObjectID, avg *float64) error
	SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error
}

// PhotoStore stores uploaded bootcamp photos.
type PhotoStore interface {
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// BootcampService implements the bootcamp write pipeline: derive the slug,
// enrich the address through the geocoder, validate the fields, persist.
// The stages run in that order and each failure mode has its own error, so
// callers never see a half-applied write.
type BootcampService struct {
	bootcamps BootcampStore
	courses   CourseStore
	reviews   ReviewStore
	photos    PhotoStore
	geocoder  geocoder.Geocoder

	// strict controls what happens when the geocoder has no match for an
	// address: fail the write (true) or persist without a location (false).
	strict bool
}

func NewBootcampService(bootcamps BootcampStore, courses CourseStore, reviews ReviewStore, photos PhotoStore, gc geocoder.Geocoder, strict bool) *BootcampService {
	return &BootcampService{
		bootcamps: bootcamps,
		courses:   courses,
		reviews:   reviews,
		photos:    photos,
		geocoder:  gc,
		strict:    strict,
	}
}

// Create runs the full write pipeline for a new bootcamp owned by userID.
func (s *BootcampService) Create(ctx context.Context, b models.Bootcamp, userID primitive.ObjectID) (models.Bootcamp, error) {
	b.ID = primitive.NewObjectID()
	b.User = userID
	b.CreatedAt = time.Now()
	b.Slug = slug.Make(b.Name)
	b.AverageRating = nil
	b.AverageCost = nil
	if b.Photo == "" {
		b.Photo = models.DefaultPhoto
	}

	if err := s.enrich(ctx, &b); err != nil {
		return models.Bootcamp{}, err
	}
	if err := models.Validate(&b); err != nil {
		return models.Bootcamp{}, err
	}

	if err := s.bootcamps.Insert(ctx, &b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return models.Bootcamp{}, ErrDuplicateName
		}
		return models.Bootcamp{}, fmt.Errorf("failed to save bootcamp: %w", err)
	}
	return b, nil
}

// Update applies the caller-editable fields to an existing bootcamp and
// re-runs the write pipeline. Only the owner or an admin may update.
func (s *BootcampService) Update(ctx context.Context, id primitive.ObjectID, in models.Bootcamp, userID primitive.ObjectID, role string) (models.Bootcamp, error) {
	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Bootcamp{}, ErrNotFound
		}
		return models.Bootcamp{}, err
	}
	if !canModify(b.User, userID, role) {
		return models.Bootcamp{}, ErrNotOwner
	}

	b.Name = in.Name
	b.Slug = slug.Make(in.Name)
	b.Description = in.Description
	b.Website = in.Website
	b.Phone = in.Phone
	b.Email = in.Email
	b.Address = in.Address
	b.Careers = in.Careers
	b.Housing = in.Housing
	b.JobAssistance = in.JobAssistance
	b.JobGuarantee = in.JobGuarantee
	b.AcceptGi = in.AcceptGi

	if err := s.enrich(ctx, &b); err != nil {
		return models.Bootcamp{}, err
	}
	if err := models.Validate(&b); err != nil {
		return models.Bootcamp{}, err
	}

	if err := s.bootcamps.Update(ctx, &b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return models.Bootcamp{}, ErrDuplicateName
		}
		return models.Bootcamp{}, fmt.Errorf("failed to update bootcamp: %w", err)
	}
	return b, nil
}

func (s *BootcampService) Get(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	b, err := s.bootcamps.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Bootcamp{}, ErrNotFound
	}
	return b, err
}

func (s *BootcampService) List(ctx context.Context) ([]models.Bootcamp, error) {
	return s.bootcamps.FindAll(ctx)
}

// Delete removes a bootcamp after cascading to its dependent records.
// Courses and reviews are deleted in parallel; if either cascade fails the
// bootcamp itself is left in place so the delete can be retried (both
// cascade steps are idempotent).
func (s *BootcampService) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, role string) error {
	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !canModify(b.User, userID, role) {
		return ErrNotOwner
	}

	courseChan := make(chan error, 1)
	reviewChan := make(chan error, 1)

	go func() {
		courseChan <- s.courses.DeleteByBootcamp(ctx, id)
	}()
	go func() {
		reviewChan <- s.reviews.DeleteByBootcamp(ctx, id)
	}()

	courseErr := <-courseChan
	reviewErr := <-reviewChan

	if courseErr != nil {
		return fmt.Errorf("cascade delete of courses failed: %w", courseErr)
	}
	if reviewErr != nil {
		return fmt.Errorf("cascade delete of reviews failed: %w", reviewErr)
	}

	return s.bootcamps.Delete(ctx, id)
}

// UploadPhoto stores an image for the bootcamp and records its object name.
func (s *BootcampService) UploadPhoto(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, role string, filename string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if !canModify(b.User, userID, role) {
		return "", ErrNotOwner
	}

	objectName := fmt.Sprintf("photo_%s%s", id.Hex(), filepath.Ext(filename))
	if _, err := s.photos.Put(ctx, objectName, r, size, contentType); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}
	if err := s.bootcamps.SetPhoto(ctx, id, objectName); err != nil {
		return "", fmt.Errorf("failed to save photo name: %w", err)
	}
	return objectName, nil
}

// enrich resolves the transient address into a location. On success the
// address is cleared, it is never persisted.
func (s *BootcampService) enrich(ctx context.Context, b *models.Bootcamp) error {
	if b.Address == "" {
		return nil
	}

	res, err := s.geocoder.Geocode(ctx, b.Address)
	switch {
	case err == nil:
		loc := models.NewPoint(res.Lng, res.Lat)
		loc.FormattedAddress = res.FormattedAddress
		loc.Street = res.Street
		loc.City = res.City
		loc.State = res.State
		loc.Zipcode = res.Zipcode
		loc.Country = res.CountryCode
		b.Location = loc
		b.Address = ""
		return nil
	case errors.Is(err, geocoder.ErrNoResults):
		if s.strict {
			return fmt.Errorf("%w: %v", ErrAddressNotFound, err)
		}
		logrus.WithField("bootcamp", b.Name).Warn("address did not geocode, saving without location")
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}
}

func canModify(owner, userID primitive.ObjectID, role string) bool {
	return owner == userID || role == models.RoleAdmin
}
