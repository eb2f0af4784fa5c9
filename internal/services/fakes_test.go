package services

import (
	"context"

	"github.com/devcamper/api/internal/geocoder"
	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeGeocoder returns a canned result or error and counts invocations.
type fakeGeocoder struct {
	result geocoder.Result
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (geocoder.Result, error) {
	f.calls++
	return f.result, f.err
}

func devworksResult() geocoder.Result {
	return geocoder.Result{
		Lng:              -71.104028,
		Lat:              42.350335,
		FormattedAddress: "233 Bay State Road, Boston, MA 02215, United States of America",
		City:             "Boston",
		State:            "Massachusetts",
		Zipcode:          "02215",
		CountryCode:      "us",
	}
}

// fakeBootcampStore is an in-memory BootcampStore with the same uniqueness
// behavior as the Mongo collection.
type fakeBootcampStore struct {
	byID      map[primitive.ObjectID]*models.Bootcamp
	insertErr error
}

func newFakeBootcampStore() *fakeBootcampStore {
	return &fakeBootcampStore{byID: make(map[primitive.ObjectID]*models.Bootcamp)}
}

func (f *fakeBootcampStore) Insert(ctx context.Context, b *models.Bootcamp) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, existing := range f.byID {
		if existing.Name == b.Name {
			return repo.ErrDuplicate
		}
	}
	clone := *b
	f.byID[b.ID] = &clone
	return nil
}

func (f *fakeBootcampStore) Update(ctx context.Context, b *models.Bootcamp) error {
	if _, ok := f.byID[b.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, existing := range f.byID {
		if id != b.ID && existing.Name == b.Name {
			return repo.ErrDuplicate
		}
	}
	clone := *b
	f.byID[b.ID] = &clone
	return nil
}

func (f *fakeBootcampStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	b, ok := f.byID[id]
	if !ok {
		return models.Bootcamp{}, repo.ErrNotFound
	}
	return *b, nil
}

func (f *fakeBootcampStore) FindAll(ctx context.Context) ([]models.Bootcamp, error) {
	out := make([]models.Bootcamp, 0, len(f.byID))
	for _, b := range f.byID {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBootcampStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeBootcampStore) SetAverageRating(ctx context.Context, id primitive.ObjectID, avg *float64) error {
	b, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	if avg == nil {
		b.AverageRating = nil
		return nil
	}
	v := *avg
	b.AverageRating = &v
	return nil
}

func (f *fakeBootcampStore) SetAverageCost(ctx context.Context, id primitive.ObjectID, avg *float64) error {
	b, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	if avg == nil {
		b.AverageCost = nil
		return nil
	}
	v := *avg
	b.AverageCost = &v
	return nil
}

func (f *fakeBootcampStore) SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error {
	b, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	b.Photo = filename
	return nil
}

// fakeCourseStore is an in-memory CourseStore.
type fakeCourseStore struct {
	byID       map[primitive.ObjectID]*models.Course
	cascadeErr error
	aggErr     error
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{byID: make(map[primitive.ObjectID]*models.Course)}
}

func (f *fakeCourseStore) Insert(ctx context.Context, c *models.Course) error {
	clone := *c
	f.byID[c.ID] = &clone
	return nil
}

func (f *fakeCourseStore) Update(ctx context.Context, c *models.Course) error {
	if _, ok := f.byID[c.ID]; !ok {
		return repo.ErrNotFound
	}
	clone := *c
	f.byID[c.ID] = &clone
	return nil
}

func (f *fakeCourseStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Course{}, repo.ErrNotFound
	}
	return *c, nil
}

func (f *fakeCourseStore) FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.byID {
		if c.Bootcamp == bootcampID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCourseStore) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	if f.cascadeErr != nil {
		return f.cascadeErr
	}
	for id, c := range f.byID {
		if c.Bootcamp == bootcampID {
			delete(f.byID, id)
		}
	}
	return nil
}

func (f *fakeCourseStore) AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (float64, int, error) {
	if f.aggErr != nil {
		return 0, 0, f.aggErr
	}
	var sum float64
	count := 0
	for _, c := range f.byID {
		if c.Bootcamp == bootcampID {
			sum += c.Tuition
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

// fakeReviewStore is an in-memory ReviewStore enforcing the (bootcamp, user)
// uniqueness constraint the way the unique index does.
type fakeReviewStore struct {
	byID       map[primitive.ObjectID]*models.Review
	cascadeErr error
	aggErr     error
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{byID: make(map[primitive.ObjectID]*models.Review)}
}

func (f *fakeReviewStore) Insert(ctx context.Context, r *models.Review) error {
	for _, existing := range f.byID {
		if existing.Bootcamp == r.Bootcamp && existing.User == r.User {
			return repo.ErrDuplicate
		}
	}
	clone := *r
	f.byID[r.ID] = &clone
	return nil
}

func (f *fakeReviewStore) Update(ctx context.Context, r *models.Review) error {
	if _, ok := f.byID[r.ID]; !ok {
		return repo.ErrNotFound
	}
	clone := *r
	f.byID[r.ID] = &clone
	return nil
}

func (f *fakeReviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return models.Review{}, repo.ErrNotFound
	}
	return *r, nil
}

func (f *fakeReviewStore) FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.byID {
		if r.Bootcamp == bootcampID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeReviewStore) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	if f.cascadeErr != nil {
		return f.cascadeErr
	}
	for id, r := range f.byID {
		if r.Bootcamp == bootcampID {
			delete(f.byID, id)
		}
	}
	return nil
}

func (f *fakeReviewStore) AverageRating(ctx context.Context, bootcampID primitive.ObjectID) (float64, int, error) {
	if f.aggErr != nil {
		return 0, 0, f.aggErr
	}
	var sum float64
	count := 0
	for _, r := range f.byID {
		if r.Bootcamp == bootcampID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}
