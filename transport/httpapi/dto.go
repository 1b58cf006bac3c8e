package httpapi

import (
	"time"

	"github.com/iguene/Bibliovirtuelle/lending/features/query/bookreviews"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/borrowerloans"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/inventoryview"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/loanlist"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/reservationlist"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const dateLayout = time.DateOnly

type registerBookRequest struct {
	BookID   string `json:"book_id"  validate:"omitempty,uuid"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

type adjustQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available maintenance lost"`
}

type borrowRequest struct {
	BookID string `json:"book_id" validate:"required,uuid"`
	LoanID string `json:"loan_id" validate:"omitempty,uuid"`
}

type reserveRequest struct {
	BookID        string `json:"book_id"        validate:"required,uuid"`
	ReservationID string `json:"reservation_id" validate:"omitempty,uuid"`
}

type reviewRequest struct {
	Rating  *int   `json:"rating"  validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type listLoansRequest struct {
	BookID     string `query:"book_id"     validate:"omitempty,uuid"`
	BorrowerID string `query:"borrower_id" validate:"omitempty,uuid"`
	Status     string `query:"status"      validate:"omitempty,oneof=active overdue returned lost"`
}

type listReservationsRequest struct {
	BookID     string `query:"book_id"     validate:"omitempty,uuid"`
	BorrowerID string `query:"borrower_id" validate:"omitempty,uuid"`
	Status     string `query:"status"      validate:"omitempty,oneof=active fulfilled cancelled expired"`
}

type listReviewsRequest struct {
	BookID string `query:"book_id" validate:"omitempty,uuid"`
}

type overdueResponse struct {
	IsOverdue   bool   `json:"is_overdue"`
	DaysOverdue int    `json:"days_overdue"`
	AccruedFine string `json:"accrued_fine"`
}

type loanResponse struct {
	ID            string           `json:"id"`
	BookID        string           `json:"book_id"`
	BorrowerID    string           `json:"borrower_id"`
	BorrowDate    string           `json:"borrow_date"`
	DueDate       string           `json:"due_date"`
	ReturnDate    *string          `json:"return_date,omitempty"`
	Status        string           `json:"status"`
	FineAmount    string           `json:"fine_amount"`
	ReservationID string           `json:"reservation_id,omitempty"`
	Overdue       *overdueResponse `json:"overdue,omitempty"`
}

type reservationResponse struct {
	ID              string     `json:"id"`
	BookID          string     `json:"book_id"`
	BorrowerID      string     `json:"borrower_id"`
	ReservationDate time.Time  `json:"reservation_date"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	Status          string     `json:"status"`
	HoldUntil       *time.Time `json:"hold_until,omitempty"`
	HoldActive      bool       `json:"hold_active"`
	Notified        bool       `json:"notified"`
}

type inventoryResponse struct {
	BookID             string `json:"book_id"`
	Quantity           int    `json:"quantity"`
	AvailableQuantity  int    `json:"available_quantity"`
	HeldQuantity       int    `json:"held_quantity"`
	Status             string `json:"status"`
	OutstandingLoans   *int   `json:"outstanding_loans,omitempty"`
	QueuedReservations *int   `json:"queued_reservations,omitempty"`
}

type loanListResponse struct {
	Count int            `json:"count"`
	Loans []loanResponse `json:"loans"`
}

type reservationListResponse struct {
	Count        int                   `json:"count"`
	Reservations []reservationResponse `json:"reservations"`
}

type reviewResponse struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	ReviewerID string    `json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type reviewListResponse struct {
	Count         int              `json:"count"`
	AverageRating string           `json:"average_rating"`
	Reviews       []reviewResponse `json:"reviews"`
}

type borrowerLoansResponse struct {
	BorrowerID   string         `json:"borrower_id"`
	Outstanding  int            `json:"outstanding"`
	AccruedFines string         `json:"accrued_fines"`
	Loans        []loanResponse `json:"loans"`
}

func loanFrom(loan core.Loan, overdue *core.OverdueView) loanResponse {
	r := loanResponse{
		ID:            loan.ID,
		BookID:        loan.BookID,
		BorrowerID:    loan.BorrowerID,
		BorrowDate:    loan.BorrowDate.Format(dateLayout),
		DueDate:       loan.DueDate.Format(dateLayout),
		Status:        loan.Status,
		FineAmount:    loan.FineAmount.StringFixed(2),
		ReservationID: loan.ReservationID,
	}

	if loan.ReturnDate != nil {
		returnDate := loan.ReturnDate.Format(dateLayout)
		r.ReturnDate = &returnDate
	}

	if overdue != nil {
		r.Overdue = &overdueResponse{
			IsOverdue:   overdue.IsOverdue,
			DaysOverdue: overdue.DaysOverdue,
			AccruedFine: overdue.AccruedFine.StringFixed(2),
		}
	}

	return r
}

func reservationFrom(reservation core.Reservation) reservationResponse {
	return reservationResponse{
		ID:              reservation.ID,
		BookID:          reservation.BookID,
		BorrowerID:      reservation.BorrowerID,
		ReservationDate: reservation.ReservationDate,
		ExpiryDate:      reservation.ExpiryDate,
		Status:          reservation.Status,
		HoldUntil:       reservation.HoldUntil,
		HoldActive:      reservation.HoldActive,
		Notified:        reservation.Notified,
	}
}

func inventoryFrom(record core.InventoryRecord) inventoryResponse {
	return inventoryResponse{
		BookID:            record.BookID,
		Quantity:          record.Quantity,
		AvailableQuantity: record.AvailableQuantity,
		HeldQuantity:      record.HeldQuantity,
		Status:            record.Status,
	}
}

func inventoryViewFrom(view inventoryview.InventoryView) inventoryResponse {
	r := inventoryFrom(view.Inventory)
	r.OutstandingLoans = &view.OutstandingLoans
	r.QueuedReservations = &view.QueuedReservations

	return r
}

func borrowerLoansFrom(loans borrowerloans.BorrowerLoans) borrowerLoansResponse {
	r := borrowerLoansResponse{
		BorrowerID:   loans.BorrowerID,
		Outstanding:  loans.Outstanding,
		AccruedFines: loans.AccruedFines.StringFixed(2),
		Loans:        make([]loanResponse, 0, len(loans.Loans)),
	}

	for _, info := range loans.Loans {
		r.Loans = append(r.Loans, loanFrom(info.Loan, &info.Overdue))
	}

	return r
}

func loanListFrom(list loanlist.LoanList) loanListResponse {
	r := loanListResponse{Count: len(list.Loans), Loans: make([]loanResponse, 0, len(list.Loans))}
	for _, info := range list.Loans {
		r.Loans = append(r.Loans, loanFrom(info.Loan, &info.Overdue))
	}

	return r
}

func reservationListFrom(list reservationlist.ReservationList) reservationListResponse {
	r := reservationListResponse{
		Count:        len(list.Reservations),
		Reservations: make([]reservationResponse, 0, len(list.Reservations)),
	}

	for _, reservation := range list.Reservations {
		r.Reservations = append(r.Reservations, reservationFrom(reservation))
	}

	return r
}

func reviewFrom(review core.Review) reviewResponse {
	return reviewResponse{
		ID:         review.ID,
		BookID:     review.BookID,
		ReviewerID: review.ReviewerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

func reviewListFrom(reviews bookreviews.BookReviews) reviewListResponse {
	r := reviewListResponse{
		Count:         reviews.Count,
		AverageRating: reviews.AverageRating.StringFixed(2),
		Reviews:       make([]reviewResponse, 0, len(reviews.Reviews)),
	}

	for _, review := range reviews.Reviews {
		r.Reviews = append(r.Reviews, reviewFrom(review))
	}

	return r
}
