package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) registerBook(c echo.Context) error {
	var req registerBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	bookID := uuid.New()
	if req.BookID != "" {
		bookID = uuid.MustParse(req.BookID)
	}

	record, err := s.lending.RegisterBook(c.Request().Context(), bookID, *req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, inventoryFrom(record))
}

func (s *Server) adjustQuantity(c echo.Context) error {
	bookID, err := pathID(c)
	if err != nil {
		return err
	}

	var req adjustQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, err := s.lending.AdjustQuantity(c.Request().Context(), bookID, *req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, inventoryFrom(record))
}

func (s *Server) setStatus(c echo.Context) error {
	bookID, err := pathID(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	status := req.Status
	if status == core.StatusAvailable {
		status = ""
	}

	record, err := s.lending.SetAdministrativeStatus(c.Request().Context(), bookID, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, inventoryFrom(record))
}

func (s *Server) inventory(c echo.Context) error {
	bookID, err := pathID(c)
	if err != nil {
		return err
	}

	asOf, err := s.asOf(c)
	if err != nil {
		return err
	}

	view, err := s.lending.InventoryView(c.Request().Context(), bookID, asOf)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, inventoryViewFrom(view))
}

func (s *Server) borrow(c echo.Context) error {
	var req borrowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	loanID := uuid.New()
	if req.LoanID != "" {
		loanID = uuid.MustParse(req.LoanID)
	}

	loan, err := s.lending.BorrowAs(c.Request().Context(), loanID, uuid.MustParse(req.BookID), actorUUID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, loanFrom(loan, nil))
}

func (s *Server) loan(c echo.Context) error {
	loanID, err := pathID(c)
	if err != nil {
		return err
	}

	asOf, err := s.asOf(c)
	if err != nil {
		return err
	}

	view, err := s.lending.Loan(c.Request().Context(), loanID, asOf)
	if err != nil {
		return err
	}

	if !actorOf(c).MayActFor(view.Loan.BorrowerID) {
		return core.ErrActorNotPermitted
	}

	return c.JSON(http.StatusOK, loanFrom(view.Loan, &view.Overdue))
}

func (s *Server) returnLoan(c echo.Context) error {
	loanID, err := pathID(c)
	if err != nil {
		return err
	}

	loan, err := s.lending.ReturnLoan(c.Request().Context(), loanID, actorOf(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loanFrom(loan, nil))
}

func (s *Server) declareLost(c echo.Context) error {
	loanID, err := pathID(c)
	if err != nil {
		return err
	}

	loan, err := s.lending.DeclareLoanLost(c.Request().Context(), loanID, actorOf(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loanFrom(loan, nil))
}

func (s *Server) myLoans(c echo.Context) error {
	asOf, err := s.asOf(c)
	if err != nil {
		return err
	}

	loans, err := s.lending.BorrowerLoans(c.Request().Context(), actorUUID(c), asOf)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, borrowerLoansFrom(loans))
}

func (s *Server) listLoans(c echo.Context) error {
	var req listLoansRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	borrowerID, err := visibleBorrower(c, req.BorrowerID)
	if err != nil {
		return err
	}

	asOf, err := s.asOf(c)
	if err != nil {
		return err
	}

	list, err := s.lending.Loans(c.Request().Context(), optionalUUID(req.BookID), borrowerID, req.Status, asOf)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loanListFrom(list))
}

func (s *Server) reserve(c echo.Context) error {
	var req reserveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reservationID := uuid.New()
	if req.ReservationID != "" {
		reservationID = uuid.MustParse(req.ReservationID)
	}

	reservation, err := s.lending.ReserveAs(c.Request().Context(), reservationID, uuid.MustParse(req.BookID), actorUUID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, reservationFrom(reservation))
}

func (s *Server) cancelReservation(c echo.Context) error {
	reservationID, err := pathID(c)
	if err != nil {
		return err
	}

	reservation, err := s.lending.CancelReservation(c.Request().Context(), reservationID, actorOf(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reservationFrom(reservation))
}

func (s *Server) listReservations(c echo.Context) error {
	var req listReservationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	borrowerID, err := visibleBorrower(c, req.BorrowerID)
	if err != nil {
		return err
	}

	asOf, err := s.asOf(c)
	if err != nil {
		return err
	}

	list, err := s.lending.Reservations(c.Request().Context(), optionalUUID(req.BookID), borrowerID, req.Status, asOf)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reservationListFrom(list))
}

func (s *Server) reviewBook(c echo.Context) error {
	bookID, err := pathID(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := s.lending.ReviewBook(c.Request().Context(), bookID, actorUUID(c), *req.Rating, req.Comment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, reviewFrom(review))
}

func (s *Server) bookReviews(c echo.Context) error {
	bookID, err := pathID(c)
	if err != nil {
		return err
	}

	reviews, err := s.lending.Reviews(c.Request().Context(), bookID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviewListFrom(reviews))
}

func (s *Server) listReviews(c echo.Context) error {
	var req listReviewsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reviews, err := s.lending.Reviews(c.Request().Context(), optionalUUID(req.BookID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviewListFrom(reviews))
}

// visibleBorrower narrows a listing to the caller unless the caller is an admin.
// Users asking for someone else's records are refused.
func visibleBorrower(c echo.Context, requested string) (uuid.UUID, error) {
	if actorOf(c).Admin {
		return optionalUUID(requested), nil
	}

	self := actorUUID(c)
	if requested != "" && optionalUUID(requested) != self {
		return uuid.Nil, core.ErrActorNotPermitted
	}

	return self, nil
}

// optionalUUID parses an already validated id. The empty string yields uuid.Nil.
func optionalUUID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}

	return uuid.MustParse(raw)
}

// bindAndValidate decodes the body into req and validates it. Ids in req are valid UUIDs afterwards.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	return c.Validate(req)
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id %q is not a UUID", errBadRequest, c.Param("id"))
	}

	return id, nil
}

// asOf reads the optional as_of query parameter (RFC 3339). It defaults to now.
func (s *Server) asOf(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("as_of")
	if raw == "" {
		return s.lending.Now(), nil
	}

	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: as_of %q is not an RFC 3339 timestamp", errBadRequest, raw)
	}

	return asOf.UTC(), nil
}

func actorUUID(c echo.Context) uuid.UUID {
	return uuid.MustParse(actorOf(c).ID)
}
