package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vshevel/roombooking/internal/domain"
	"github.com/vshevel/roombooking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.Engine) {
	router.POST("/booking", h.create)
	router.GET("/booking/:id", h.get)
	router.PUT("/booking/:id/complete", h.complete)
	router.DELETE("/booking/:id", h.cancel)

	router.GET("/bookings", h.list)
	router.GET("/bookings/customer/:id", h.listByCustomer)
	router.GET("/bookings/room-type/:id", h.listByRoomType)
	router.GET("/bookings/date/:date", h.listByDate)
}

// create accepts a full booking payload on purpose: bookingId and status
// are bound too, so a client that sets either gets the store's
// protocol-violation error back as a 400.
func (h *BookingHandler) create(c *gin.Context) {
	var req domain.Booking
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, found := h.service.GetByID(c.Request.Context(), id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// complete and cancel report a bare boolean: true when the transition was
// applied, false when the booking is missing or already terminal. The two
// failure cases are not distinguished.
func (h *BookingHandler) complete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.Complete(c.Request.Context(), id))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.Cancel(c.Request.Context(), id))
}

func (h *BookingHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

func (h *BookingHandler) listByCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	c.JSON(http.StatusOK, h.service.ListByCustomer(c.Request.Context(), uint32(id)))
}

func (h *BookingHandler) listByRoomType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 8)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room type id"})
		return
	}
	c.JSON(http.StatusOK, h.service.ListByRoomType(c.Request.Context(), uint8(id)))
}

func (h *BookingHandler) listByDate(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListByCheckInDate(c.Request.Context(), c.Param("date")))
}

func bookingID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint32(id), true
}
