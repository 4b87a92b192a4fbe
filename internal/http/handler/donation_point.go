package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"donationpoints/internal/logging"
	"donationpoints/internal/model"
	"donationpoints/internal/service"
	"donationpoints/internal/validation"
)

type pointResponse struct {
	Success bool                 `json:"success"`
	Data    *model.DonationPoint `json:"data"`
}

type listResponse struct {
	Success   bool                  `json:"success"`
	Locations []model.DonationPoint `json:"locations"`
}

type snapshotResponse struct {
	Success bool                    `json:"success"`
	Data    *service.SnapshotResult `json:"data"`
}

// CreateLocation registers a donation point submitted as JSON.
//
// @Summary      Submit a donation point
// @Description  Rejects submissions within 0.001 degrees of an existing point unless force=true.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        force  query     bool                 false  "skip the duplicate check"
// @Param        body   body      model.DonationPoint  true   "submission"
// @Success      201    {object}  pointResponse
// @Failure      400    {object}  errorPayload
// @Failure      409    {object}  errorPayload
// @Failure      500    {object}  errorPayload
// @Router       /api/locations [post]
func CreateLocation(svc service.DonationPointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		force, _ := strconv.ParseBool(c.Query("force"))

		body := bytes.TrimSpace(c.Body())
		if len(body) == 0 {
			return writeError(c, fiber.StatusBadRequest, "BODY_REQUIRED", "request body is required")
		}
		payload, err := decodeJSON(body)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		}

		p, err := svc.Create(c.UserContext(), payload, service.CreateOptions{Force: force})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pointResponse{Success: true, Data: p})
	}
}

// ListLocations returns active donation points, newest first.
//
// @Summary      List donation points
// @Tags         locations
// @Produce      json
// @Param        autonomousCommunity  query     string  false  "exact autonomous community"
// @Param        province             query     string  false  "exact province"
// @Param        city                 query     string  false  "exact city"
// @Param        acceptedItems        query     string  false  "comma separated items, any match"
// @Success      200                  {object}  listResponse
// @Failure      400                  {object}  errorPayload
// @Failure      500                  {object}  errorPayload
// @Router       /api/locations [get]
func ListLocations(svc service.DonationPointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseListFilter(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", err.Error())
		}
		points, err := svc.List(c.UserContext(), f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(listResponse{Success: true, Locations: points})
	}
}

// CreateSnapshot publishes the filtered list as a GeoJSON file and returns a temporary link.
//
// @Summary      Publish a GeoJSON snapshot
// @Tags         locations
// @Produce      json
// @Param        autonomousCommunity  query     string  false  "exact autonomous community"
// @Param        province             query     string  false  "exact province"
// @Param        city                 query     string  false  "exact city"
// @Param        acceptedItems        query     string  false  "comma separated items, any match"
// @Success      201                  {object}  snapshotResponse
// @Failure      400                  {object}  errorPayload
// @Failure      500                  {object}  errorPayload
// @Failure      503                  {object}  errorPayload
// @Router       /api/locations/snapshots [post]
func CreateSnapshot(svc service.DonationPointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseListFilter(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", err.Error())
		}
		res, err := svc.Snapshot(c.UserContext(), f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(snapshotResponse{Success: true, Data: res})
	}
}

// writeServiceError maps service errors onto the failure envelope. Internal details are logged, not returned.
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		verr *validation.ValidationError
		dup  *service.DuplicateConflictError
	)
	switch {
	case errors.As(err, &verr):
		res := newErrorPayload(c, "VALIDATION_FAILED", "validation failed")
		res.Details = verr.Issues
		return c.Status(fiber.StatusBadRequest).JSON(res)
	case errors.As(err, &dup):
		res := newErrorPayload(c, "DUPLICATE_LOCATION", "a donation point already exists at this location")
		res.NearbyLocation = dup.Existing
		return c.Status(fiber.StatusConflict).JSON(res)
	case errors.Is(err, service.ErrSnapshotsDisabled):
		return writeError(c, fiber.StatusServiceUnavailable, "SNAPSHOTS_DISABLED", "snapshots are not configured")
	default:
		logging.FromContext(c.UserContext(), nil).Error("request_failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON value")
	}
	return payload, nil
}

// parseListFilter reads the list filters from the query string.
// acceptedItems is comma separated and case-insensitive; unknown items are rejected.
func parseListFilter(c *fiber.Ctx) (model.ListFilter, error) {
	f := model.ListFilter{
		AutonomousCommunity: strings.TrimSpace(c.Query("autonomousCommunity")),
		Province:            strings.TrimSpace(c.Query("province")),
		City:                strings.TrimSpace(c.Query("city")),
	}

	raw := strings.TrimSpace(c.Query("acceptedItems"))
	if raw == "" {
		return f, nil
	}
	for _, part := range strings.Split(raw, ",") {
		item := model.AcceptedItem(strings.ToUpper(strings.TrimSpace(part)))
		if item == "" {
			continue
		}
		if !item.Valid() {
			return model.ListFilter{}, fmt.Errorf("unknown accepted item %q", part)
		}
		f.AcceptedItems = append(f.AcceptedItems, item)
	}
	return f, nil
}
