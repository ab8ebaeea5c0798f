package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/validate"
	"github.com/google/uuid"
)

// Request is the booking form for one shop.
type Request struct {
	ServiceID string `json:"service_id" validate:"required"`
	StaffID   string `json:"staff_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
}

// Appointment is a captured booking. It is never checked against shifts or
// other appointments.
type Appointment struct {
	ID          uuid.UUID `json:"id"`
	ShopID      string    `json:"shop_id"`
	ShopName    string    `json:"shop_name"`
	ServiceID   string    `json:"service_id"`
	ServiceName string    `json:"service_name"`
	StaffID     string    `json:"staff_id"`
	StaffName   string    `json:"staff_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ledger receives captured appointments.
type Ledger interface {
	AddAppointment(Appointment)
}

// Capturer validates booking requests and records them on a Ledger.
type Capturer struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// NewCapturer builds a Capturer using the wall clock and random ids.
func NewCapturer() *Capturer {
	return &Capturer{now: time.Now, newID: uuid.New}
}

// Capture validates req against shop and appends the appointment to ledger.
func (c *Capturer) Capture(ctx context.Context, ledger Ledger, shop catalog.Shop, req Request) (Appointment, error) {
	if ledger == nil {
		return Appointment{}, pkgerrors.New(pkgerrors.CodeInternal, "booking ledger is required")
	}
	if err := validate.Struct(&req); err != nil {
		return Appointment{}, err
	}

	svc, ok := shop.FindService(req.ServiceID)
	if !ok {
		return Appointment{}, unknownReference("service_id", req.ServiceID)
	}
	member, ok := shop.FindStaff(req.StaffID)
	if !ok {
		return Appointment{}, unknownReference("staff_id", req.StaffID)
	}

	appt := Appointment{
		ID:          c.newID(),
		ShopID:      shop.ID,
		ShopName:    shop.Name,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		StaffID:     member.ID,
		StaffName:   member.Name,
		Date:        req.Date,
		Time:        req.Time,
		CreatedAt:   c.now().UTC(),
	}
	ledger.AddAppointment(appt)
	return appt, nil
}

// ConfirmationMessage is returned alongside a captured appointment.
const ConfirmationMessage = "Appointment booked successfully!"

func unknownReference(field, value string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{field: fmt.Sprintf("unknown id %q for this shop", value)})
}
