package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

const DefaultCancelWindow = 2 * time.Hour

type RentalService struct {
	db           *gorm.DB
	rentals      *repository.RentalRepository
	cars         *repository.CarRepository
	users        *repository.UserRepository
	payments     *repository.PaymentRepository
	blacklist    *repository.BlacklistRepository
	notifier     Notifier
	cancelWindow time.Duration

	Now func() time.Time
}

func NewRentalService(db *gorm.DB, notifier Notifier, cancelWindow time.Duration) *RentalService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cancelWindow <= 0 {
		cancelWindow = DefaultCancelWindow
	}
	return &RentalService{
		db:           db,
		rentals:      repository.NewRentalRepository(db),
		cars:         repository.NewCarRepository(db),
		users:        repository.NewUserRepository(db),
		payments:     repository.NewPaymentRepository(db),
		blacklist:    repository.NewBlacklistRepository(db),
		notifier:     notifier,
		cancelWindow: cancelWindow,
		Now:          time.Now,
	}
}

type BookingInput struct {
	CarID          uint
	StartDate      time.Time
	EndDate        time.Time
	PickupLocation string
	ReturnLocation string
	Note           string
	WithInsurance  bool
	PaymentMethod  entity.PaymentMethod
}

// CreateBooking checks and inserts a rental plus its payment row in one
// transaction. The car row is locked first so two overlapping bookings
// cannot both pass the overlap check.
func (s *RentalService) CreateBooking(ctx context.Context, customerID uint, in BookingInput) (*entity.Rental, error) {
	start, end := utils.TruncateDay(in.StartDate), utils.TruncateDay(in.EndDate)
	if !end.After(start) {
		return nil, apperr.Validation("end date must be after start date")
	}
	if start.Before(utils.TruncateDay(s.Now())) {
		return nil, apperr.Validation("start date is in the past")
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = entity.MethodPromptPay
	}
	if !in.PaymentMethod.IsValid() {
		return nil, apperr.Validation("invalid payment method")
	}

	var rental *entity.Rental
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		car, err := s.cars.WithTx(tx).LockByID(ctx, in.CarID)
		if err != nil {
			return apperr.FromDB(err, "car not found")
		}
		if car.Status != entity.CarAvailable {
			return apperr.Validation("car is not available")
		}
		shop, err := s.users.WithTx(tx).FindShop(ctx, car.ShopID)
		if err != nil {
			return apperr.FromDB(err, "shop not found")
		}
		if !shop.IsActive() {
			return apperr.Validation("shop is not accepting bookings")
		}

		banned, err := s.blacklist.WithTx(tx).Exists(ctx, car.ShopID, customerID)
		if err != nil {
			return err
		}
		if banned {
			return apperr.Forbidden("you cannot book cars from this shop")
		}

		overlap, err := s.rentals.WithTx(tx).HasOverlap(ctx, car.ID, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return apperr.Conflict("car is already booked for these dates")
		}

		days := utils.RentalDays(start, end)
		total := car.DailyRate * float64(days)
		if in.WithInsurance {
			total += car.InsuranceRate * float64(days)
		}

		rental = &entity.Rental{
			CarID:          car.ID,
			CustomerID:     customerID,
			ShopID:         car.ShopID,
			StartDate:      start,
			EndDate:        end,
			PickupLocation: strings.TrimSpace(in.PickupLocation),
			ReturnLocation: strings.TrimSpace(in.ReturnLocation),
			Note:           strings.TrimSpace(in.Note),
			RentalStatus:   entity.RentalPending,
			PaymentStatus:  entity.PaymentPending,
			Days:           days,
			DailyRate:      car.DailyRate,
			InsuranceRate:  car.InsuranceRate,
			WithInsurance:  in.WithInsurance,
			TotalAmount:    total,
			DepositAmount:  car.DepositAmount,
		}
		if err := s.rentals.WithTx(tx).Create(ctx, rental); err != nil {
			return err
		}
		return s.payments.WithTx(tx).Create(ctx, &entity.Payment{
			RentalID:      rental.ID,
			PaymentMethod: in.PaymentMethod,
			Amount:        total,
			PaymentStatus: entity.PaymentPending,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(rental.ShopID, EventRentalCreated, rental.ID, string(entity.RentalPending))
	return s.rentals.FindByID(ctx, rental.ID)
}

// ---------------- Reads ----------------

func (s *RentalService) GetForCustomer(ctx context.Context, customerID, id uint) (*entity.Rental, error) {
	r, err := s.rentals.FindForCustomer(ctx, customerID, id)
	return r, apperr.FromDB(err, "rental not found")
}

func (s *RentalService) GetForShop(ctx context.Context, shopID, id uint) (*entity.Rental, error) {
	r, err := s.rentals.FindForShop(ctx, shopID, id)
	return r, apperr.FromDB(err, "rental not found")
}

func (s *RentalService) ListForCustomer(ctx context.Context, customerID uint, f repository.RentalFilter) ([]entity.Rental, int64, error) {
	if err := validateRentalFilter(f); err != nil {
		return nil, 0, err
	}
	return s.rentals.ListForCustomer(ctx, customerID, f)
}

func (s *RentalService) ListForShop(ctx context.Context, shopID uint, f repository.RentalFilter) ([]entity.Rental, int64, error) {
	if err := validateRentalFilter(f); err != nil {
		return nil, 0, err
	}
	return s.rentals.ListForShop(ctx, shopID, f)
}

func validateRentalFilter(f repository.RentalFilter) error {
	if f.RentalStatus != "" && !f.RentalStatus.IsValid() {
		return apperr.Validation("invalid rental status")
	}
	if f.PaymentStatus != "" && !f.PaymentStatus.IsValid() {
		return apperr.Validation("invalid payment status")
	}
	return nil
}

// ---------------- Customer actions ----------------

// CustomerCancel is allowed only while the rental is pending and inside
// the cancellation window counted from the booking time.
func (s *RentalService) CustomerCancel(ctx context.Context, customerID, id uint, reason string) (*entity.Rental, error) {
	r, err := s.GetForCustomer(ctx, customerID, id)
	if err != nil {
		return nil, err
	}
	if _, err := NextRentalStatus(r.RentalStatus, RentalCustomerCancel, entity.RoleCustomer); err != nil {
		return nil, err
	}
	now := s.Now()
	if now.Sub(r.CreatedAt) > s.cancelWindow {
		return nil, apperr.Forbidden("cancellation window has expired")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.transition(ctx, tx, r, RentalCustomerCancel, entity.RoleCustomer, map[string]any{
			"cancelled_at":  now,
			"cancelled_by":  entity.RoleCustomer,
			"cancel_reason": strings.TrimSpace(reason),
		}); err != nil {
			return err
		}
		if err := s.voidPayment(ctx, tx, r.ID); err != nil {
			return err
		}
		return s.releaseCar(ctx, tx, r.CarID, r.ID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(r.ShopID, EventRentalCancelled, r.ID, string(entity.RentalCancelled))
	return s.rentals.FindByID(ctx, r.ID)
}

// RequestReturn keeps the rental ongoing and stamps return_requested_at;
// the shop completes it after inspecting the car.
func (s *RentalService) RequestReturn(ctx context.Context, customerID, id uint) (*entity.Rental, error) {
	r, err := s.GetForCustomer(ctx, customerID, id)
	if err != nil {
		return nil, err
	}
	if r.RentalStatus == entity.RentalOngoing && r.ReturnRequestedAt != nil {
		return nil, apperr.InvalidState("return already requested")
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.transition(ctx, tx, r, RentalRequestReturn, entity.RoleCustomer, map[string]any{
			"return_requested_at": s.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(r.ShopID, EventRentalReturnRequested, r.ID, string(entity.RentalOngoing))
	return s.rentals.FindByID(ctx, r.ID)
}

// ---------------- Shop actions ----------------

func (s *RentalService) Confirm(ctx context.Context, shopID, id uint) (*entity.Rental, error) {
	return s.shopStep(ctx, shopID, id, RentalConfirm, EventRentalConfirmed, func(tx *gorm.DB, r *entity.Rental) (map[string]any, error) {
		return map[string]any{"confirmed_at": s.Now()}, nil
	}, nil)
}

// Start hands the car over; the car goes from available to rented. A car
// the shop took off the market must be put back first.
func (s *RentalService) Start(ctx context.Context, shopID, id uint) (*entity.Rental, error) {
	return s.shopStep(ctx, shopID, id, RentalStart, EventRentalStarted, func(tx *gorm.DB, r *entity.Rental) (map[string]any, error) {
		return map[string]any{"picked_up_at": s.Now()}, nil
	}, func(tx *gorm.DB, r *entity.Rental) error {
		ok, err := s.cars.WithTx(tx).SetStatusIf(ctx, r.CarID, entity.CarAvailable, entity.CarRented)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.InvalidState("car is not available for pickup")
		}
		return nil
	})
}

func (s *RentalService) Complete(ctx context.Context, shopID, id uint) (*entity.Rental, error) {
	return s.shopStep(ctx, shopID, id, RentalComplete, EventRentalCompleted, func(tx *gorm.DB, r *entity.Rental) (map[string]any, error) {
		return map[string]any{"completed_at": s.Now()}, nil
	}, func(tx *gorm.DB, r *entity.Rental) error {
		return s.releaseCar(ctx, tx, r.CarID, r.ID)
	})
}

func (s *RentalService) ShopCancel(ctx context.Context, shopID, id uint, reason string) (*entity.Rental, error) {
	return s.shopStep(ctx, shopID, id, RentalShopCancel, EventRentalCancelled, func(tx *gorm.DB, r *entity.Rental) (map[string]any, error) {
		now := s.Now()
		return map[string]any{
			"cancelled_at":         now,
			"cancelled_by":         entity.RoleShop,
			"cancel_reason":        strings.TrimSpace(reason),
			"shop_acknowledged_at": now,
		}, nil
	}, func(tx *gorm.DB, r *entity.Rental) error {
		if err := s.voidPayment(ctx, tx, r.ID); err != nil {
			return err
		}
		return s.releaseCar(ctx, tx, r.CarID, r.ID)
	})
}

// Acknowledge marks a cancellation as seen by the shop. Repeating it is a
// no-op.
func (s *RentalService) Acknowledge(ctx context.Context, shopID, id uint) (*entity.Rental, error) {
	r, err := s.GetForShop(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if r.RentalStatus != entity.RentalCancelled {
		return nil, apperr.InvalidState("only cancelled rentals can be acknowledged")
	}
	if r.ShopAcknowledgedAt != nil {
		return r, nil
	}
	if err := s.rentals.Update(ctx, r.ID, map[string]any{"shop_acknowledged_at": s.Now()}); err != nil {
		return nil, err
	}
	return s.rentals.FindByID(ctx, r.ID)
}

func (s *RentalService) shopStep(
	ctx context.Context, shopID, id uint, act RentalAction, event string,
	fields func(tx *gorm.DB, r *entity.Rental) (map[string]any, error),
	after func(tx *gorm.DB, r *entity.Rental) error,
) (*entity.Rental, error) {
	r, err := s.GetForShop(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	var to entity.RentalStatus
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		extra, err := fields(tx, r)
		if err != nil {
			return err
		}
		if to, err = s.transition(ctx, tx, r, act, entity.RoleShop, extra); err != nil {
			return err
		}
		if after != nil {
			return after(tx, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(r.CustomerID, event, r.ID, string(to))
	return s.rentals.FindByID(ctx, r.ID)
}

// transition applies one lifecycle step with a guarded update. Zero
// affected rows means the rental moved under us.
func (s *RentalService) transition(ctx context.Context, tx *gorm.DB, r *entity.Rental, act RentalAction, actor entity.Role, extra map[string]any) (entity.RentalStatus, error) {
	to, err := NextRentalStatus(r.RentalStatus, act, actor)
	if err != nil {
		return "", err
	}
	fields := map[string]any{"rental_status": to}
	for k, v := range extra {
		fields[k] = v
	}
	n, err := s.rentals.WithTx(tx).UpdateStatusGuard(ctx, r.ID, r.RentalStatus, fields)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", apperr.InvalidState("invalid state or already updated")
	}
	return to, nil
}

// voidPayment fails a payment nobody has paid yet. Anything further along
// is left for the refund flow.
func (s *RentalService) voidPayment(ctx context.Context, tx *gorm.DB, rentalID uint) error {
	p, err := s.payments.WithTx(tx).GetByRentalID(ctx, rentalID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	to, err := NextPaymentStatus(p.PaymentStatus, PaymentVoid)
	if err != nil {
		return nil
	}
	if _, err := s.payments.WithTx(tx).UpdateStatusGuard(ctx, p.ID, p.PaymentStatus, map[string]any{"payment_status": to}); err != nil {
		return err
	}
	return s.rentals.WithTx(tx).SetPaymentStatus(ctx, rentalID, to)
}

// releaseCar puts a rented car back on the market once no other ongoing
// rental holds it.
func (s *RentalService) releaseCar(ctx context.Context, tx *gorm.DB, carID, rentalID uint) error {
	n, err := s.rentals.WithTx(tx).CountOngoingForCar(ctx, carID, rentalID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = s.cars.WithTx(tx).SetStatusIf(ctx, carID, entity.CarRented, entity.CarAvailable)
	return err
}

func (s *RentalService) publish(userID uint, typ string, rentalID uint, status string) {
	s.notifier.Notify(userID, Event{Type: typ, RentalID: rentalID, Status: status, At: s.Now()})
}
