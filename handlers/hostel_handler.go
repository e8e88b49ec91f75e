package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/media"
	"github.com/hostelites/hostelites-api/services"
	"github.com/hostelites/hostelites-api/store"
)

const dateLayout = "2006-01-02"

type HostelHandler struct {
	hostels *services.HostelService
}

func NewHostelHandler(hostels *services.HostelService) *HostelHandler {
	return &HostelHandler{hostels: hostels}
}

type CreateHostelRequest struct {
	Name          string   `json:"name" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	Distance      float64  `json:"distance"`
	Specification []string `json:"specification"`
	Description   string   `json:"description" validate:"required"`
}

type UpdateHostelRequest struct {
	Name          *string   `json:"name"`
	Location      *string   `json:"location"`
	Distance      *float64  `json:"distance"`
	Specification *[]string `json:"specification"`
	Description   *string   `json:"description"`
}

func (h *HostelHandler) CreateHostel(c *fiber.Ctx) error {
	var req CreateHostelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if _, err := h.hostels.Create(c.Context(), services.CreateHostelInput{
		Name:          req.Name,
		Location:      req.Location,
		Distance:      req.Distance,
		Specification: req.Specification,
		Description:   req.Description,
	}); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// GetAllHostels is the availability search endpoint. Query parameters:
// location (substring), room (min room count), person (occupancy), d1/d2
// (inclusive date range).
func (h *HostelHandler) GetAllHostels(c *fiber.Ctx) error {
	query := services.SearchQuery{Location: c.Query("location")}

	if v := c.Query("room"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "At least one room required")
		}
		query.MinRooms = &n
	}
	if v := c.Query("person"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "At least one person required")
		}
		query.Persons = &n
	}
	if d1, d2 := c.Query("d1"), c.Query("d2"); d1 != "" && d2 != "" {
		from, err := time.Parse(dateLayout, d1)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Please check start and end date")
		}
		to, err := time.Parse(dateLayout, d2)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Please check start and end date")
		}
		query.From, query.To = &from, &to
	}

	hostels, err := h.hostels.Search(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "hostels": hostels})
}

func (h *HostelHandler) GetHostelDetails(c *fiber.Ctx) error {
	id, err := hostelID(c)
	if err != nil {
		return err
	}

	hostel, err := h.hostels.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "hostel": hostel})
}

func (h *HostelHandler) UpdateHostel(c *fiber.Ctx) error {
	id, err := hostelID(c)
	if err != nil {
		return err
	}

	var req UpdateHostelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}

	hostel, err := h.hostels.Update(c.Context(), id, store.HostelPatch{
		Name:          req.Name,
		Location:      req.Location,
		Distance:      req.Distance,
		Specification: req.Specification,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "hostel": hostel})
}

func (h *HostelHandler) DeleteHostel(c *fiber.Ctx) error {
	id, err := hostelID(c)
	if err != nil {
		return err
	}

	hostels, err := h.hostels.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "hostels": hostels, "message": "Hostel deleted successfully"})
}

func (h *HostelHandler) UploadHostelPictures(c *fiber.Ctx) error {
	id, err := hostelID(c)
	if err != nil {
		return err
	}

	files, closeFiles, err := picturesFromForm(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	hostel, err := h.hostels.ReplacePictures(c.Context(), id, files)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "hostel": hostel})
}

func hostelID(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid hostel id")
	}
	return id, nil
}

// picturesFromForm pulls the uploaded "pictures" files out of the multipart
// form. The returned closer must be called after the upload completes.
func picturesFromForm(c *fiber.Ctx) ([]media.UploadFile, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No usable form; let the service report the missing-pictures error,
		// but keep the parse failure visible for debugging.
		log.Printf("Multipart form parse failed: %v", err)
		return nil, func() {}, nil
	}

	var files []media.UploadFile
	var opened []interface{ Close() error }
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, header := range form.File["pictures"] {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, media.UploadFile{Name: header.Filename, Reader: f})
	}
	return files, closeAll, nil
}
