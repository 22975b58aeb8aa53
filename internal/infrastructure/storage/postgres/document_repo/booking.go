package document_repo

import (
	"tradebooks/internal/domain/documents/booking"
)

// BookingRepo implements booking.Repository.
type BookingRepo struct {
	*BaseDocumentRepo[*booking.Booking, booking.Line]
}

// NewBookingRepo creates a new booking repository.
func NewBookingRepo() *BookingRepo {
	return &BookingRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			"doc_bookings", "doc_booking_lines",
			[]string{"number", "note"},
			func() *booking.Booking { return &booking.Booking{} },
			func(d *booking.Booking) []booking.Line { return d.Lines },
			func(d *booking.Booking, lines []booking.Line) { d.Lines = lines },
		),
	}
}

var _ booking.Repository = (*BookingRepo)(nil)
