package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

// memBookings is an in-memory BookingRepo with per-field critical sections.
type memBookings struct {
	mu       sync.Mutex
	locks    sync.Map
	bookings []models.Booking
	nextID   uint
}

func newMemBookings(seed ...models.Booking) *memBookings {
	s := &memBookings{}
	for _, b := range seed {
		s.nextID++
		if b.ID == 0 {
			b.ID = s.nextID
		}
		s.bookings = append(s.bookings, b)
	}
	return s
}

func (s *memBookings) snapshot() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Booking(nil), s.bookings...)
}

func (s *memBookings) IsBooked(_ context.Context, fieldID uint, start, end time.Time) (bool, error) {
	return IsBookedIn(s.snapshot(), fieldID, start, end), nil
}

func (s *memBookings) BookedFieldIDs(_ context.Context, start, end time.Time) ([]uint, error) {
	seen := map[uint]bool{}
	var ids []uint
	for _, b := range s.snapshot() {
		if b.Status.IsActive() && b.Overlaps(start, end) && !seen[b.FieldID] {
			seen[b.FieldID] = true
			ids = append(ids, b.FieldID)
		}
	}
	return ids, nil
}

func (s *memBookings) CountUserBookings(_ context.Context, userID uint, statuses ...models.BookingStatus) (int64, error) {
	var n int64
	for _, b := range s.snapshot() {
		if b.UserID != userID {
			continue
		}
		if len(statuses) == 0 {
			n++
			continue
		}
		for _, st := range statuses {
			if b.Status == st {
				n++
				break
			}
		}
	}
	return n, nil
}

func (s *memBookings) WithFieldLock(ctx context.Context, fieldID uint, fn func(tx ports.BookingTx) error) error {
	l, _ := s.locks.LoadOrStore(fieldID, &sync.Mutex{})
	m := l.(*sync.Mutex)
	m.Lock()
	defer m.Unlock()

	tx := &memTx{memBookings: s}
	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range tx.staged {
		s.bookings = append(s.bookings, *b)
	}
	return nil
}

func (s *memBookings) UpdateStatus(_ context.Context, fieldID, bookingID uint, fn func(b *models.Booking) error) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == bookingID && s.bookings[i].FieldID == fieldID {
			b := s.bookings[i]
			if err := fn(&b); err != nil {
				return nil, err
			}
			s.bookings[i] = b
			return &b, nil
		}
	}
	return nil, models.ErrBookingNotFound
}

func (s *memBookings) GetByID(_ context.Context, fieldID, bookingID uint) (*models.Booking, error) {
	for _, b := range s.snapshot() {
		if b.ID == bookingID && b.FieldID == fieldID {
			return &b, nil
		}
	}
	return nil, models.ErrBookingNotFound
}

func (s *memBookings) ListByField(_ context.Context, fieldID uint, f ports.BookingFilter) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.snapshot() {
		if b.FieldID != fieldID {
			continue
		}
		if f.UserID != 0 && b.UserID != f.UserID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if pi, pj := out[i].Status.Priority(), out[j].Status.Priority(); pi != pj {
			return pi < pj
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

type memTx struct {
	*memBookings
	staged []*models.Booking
}

// Create rejects an active booking overlapping another active one, as the
// store's constraints do.
func (t *memTx) Create(_ context.Context, b *models.Booking) error {
	if b.Status.IsActive() {
		existing := t.snapshot()
		for _, s := range t.staged {
			existing = append(existing, *s)
		}
		if IsBookedIn(existing, b.FieldID, b.StartTime, b.EndTime) {
			return models.ErrOverlapConflict
		}
	}
	t.mu.Lock()
	t.nextID++
	b.ID = t.nextID
	t.mu.Unlock()
	t.staged = append(t.staged, b)
	return nil
}

// memFields is an in-memory FieldRepo.
type memFields struct {
	mu     sync.Mutex
	fields map[uint]models.Field
	nextID uint
}

func newMemFields(seed ...models.Field) *memFields {
	s := &memFields{fields: map[uint]models.Field{}}
	for _, f := range seed {
		if f.ID == 0 {
			s.nextID++
			f.ID = s.nextID
		} else if f.ID > s.nextID {
			s.nextID = f.ID
		}
		s.fields[f.ID] = f
	}
	return s
}

func (s *memFields) Create(_ context.Context, f *models.Field, imageIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	for _, id := range imageIDs {
		f.Images = append(f.Images, models.File{ID: id})
	}
	s.fields[f.ID] = *f
	return nil
}

func (s *memFields) Update(_ context.Context, f *models.Field, imageIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if imageIDs != nil {
		f.Images = nil
		for _, id := range imageIDs {
			f.Images = append(f.Images, models.File{ID: id})
		}
	}
	s.fields[f.ID] = *f
	return nil
}

func (s *memFields) GetByID(_ context.Context, id uint) (*models.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[id]
	if !ok {
		return nil, models.ErrFieldNotFound
	}
	return &f, nil
}

func (s *memFields) Deactivate(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[id]
	if !ok {
		return models.ErrFieldNotFound
	}
	f.IsActive = false
	s.fields[id] = f
	return nil
}

func (s *memFields) List(_ context.Context, q ports.FieldQuery) ([]models.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	var out []models.Field
	for _, f := range s.fields {
		if !q.IncludeInactive && !f.IsActive {
			continue
		}
		if q.OwnerID != 0 && f.OwnerID != q.OwnerID {
			continue
		}
		if q.DistrictID != 0 && (f.Address == nil || f.Address.DistrictID != q.DistrictID) {
			continue
		}
		if needle != "" {
			line := ""
			if f.Address != nil {
				line = f.Address.AddressLine
			}
			hay := strings.ToLower(f.Name + "\x00" + f.Description + "\x00" + line)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		if q.BBox != nil {
			lat, lng, ok := f.Location()
			if !ok || !utils.IsPointInBoundingBox(utils.Point{Lat: lat, Lng: lng}, *q.BBox) {
				continue
			}
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memLocations struct {
	districts map[uint]bool
}

func (m *memLocations) ListCountries(context.Context) ([]models.Country, error) { return nil, nil }
func (m *memLocations) ListRegions(context.Context, uint) ([]models.Region, error) {
	return nil, nil
}
func (m *memLocations) ListDistricts(context.Context, uint) ([]models.District, error) {
	return nil, nil
}
func (m *memLocations) DistrictExists(_ context.Context, id uint) (bool, error) {
	return m.districts[id], nil
}

// mockPublisher records published booking events.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func ptr[T any](v T) *T { return &v }

func testField(id, owner uint, name string, lat, lng float64) models.Field {
	return models.Field{
		ID:            id,
		Name:          name,
		OwnerID:       owner,
		HourlyPrice:   100000,
		Width:         40,
		Length:        60,
		IsActive:      true,
		ContactNumber: "+998901234567",
		Address: &models.Address{
			DistrictID: 1,
			Latitude:   ptr(lat),
			Longitude:  ptr(lng),
		},
	}
}
