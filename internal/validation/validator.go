package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"donationpoints/internal/model"
)

// Issue describes a single offending field. Path uses the JSON field names,
// with array elements written as acceptedItems[1].
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError is returned when a submission payload is malformed.
// It always carries at least one Issue.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "invalid donation point: " + strings.Join(parts, "; ")
}

// HasPath reports whether any issue refers to path.
func (e *ValidationError) HasPath(path string) bool {
	for _, is := range e.Issues {
		if is.Path == path {
			return true
		}
	}
	return false
}

// submission is the typed shape checked by validator tags once raw values have been coerced.
type submission struct {
	Name                string   `json:"name" validate:"required"`
	Address             string   `json:"address" validate:"required"`
	PostalCode          string   `json:"postalCode" validate:"required"`
	City                string   `json:"city" validate:"required"`
	Province            string   `json:"province" validate:"required"`
	AutonomousCommunity string   `json:"autonomousCommunity" validate:"required"`
	Latitude            float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude           float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Email               *string  `json:"email" validate:"omitempty,email"`
	Website             *string  `json:"website" validate:"omitempty,url"`
	GoogleMapsURL       *string  `json:"googleMapsUrl" validate:"omitempty,url"`
	AcceptedItems       []string `json:"acceptedItems" validate:"dive,oneof=FOOD CLOTHING HYGIENE CLEANING MEDICINE TOOLS OTHER"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks an untyped submission payload (as decoded from JSON) and returns the
// normalized donation point, without id or timestamps. On failure the error is a *ValidationError.
func Validate(payload any) (*model.DonationPoint, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &ValidationError{Issues: []Issue{{Message: "payload must be a JSON object"}}}
	}

	c := &coercer{obj: obj}
	sub := submission{
		Name:                c.requiredString("name"),
		Address:             c.requiredString("address"),
		PostalCode:          c.requiredString("postalCode"),
		City:                c.requiredString("city"),
		Province:            c.requiredString("province"),
		AutonomousCommunity: c.requiredString("autonomousCommunity"),
		Email:               c.optionalString("email"),
		Website:             c.optionalString("website"),
		GoogleMapsURL:       c.optionalString("googleMapsUrl"),
		AcceptedItems:       c.items("acceptedItems"),
	}
	description := c.optionalString("description")
	phone := c.optionalString("phone")
	schedule := c.optionalString("schedule")
	isActive := c.optionalBool("isActive", true)

	lat, latOK := c.coordinate("latitude")
	lon, lonOK := c.coordinate("longitude")
	if !latOK && !lonOK && sub.GoogleMapsURL != nil {
		if glat, glon, found := CoordinatesFromGoogleMapsURL(*sub.GoogleMapsURL); found {
			lat, lon, latOK, lonOK = glat, glon, true, true
		}
	}
	if !latOK {
		c.missing("latitude")
	}
	if !lonOK {
		c.missing("longitude")
	}
	sub.Latitude, sub.Longitude = lat, lon

	issues := c.issues
	if err := validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate submission: %w", err)
		}
		for _, fe := range verrs {
			path := fieldPath(fe)
			if c.reported(path) {
				continue
			}
			issues = append(issues, Issue{Path: path, Message: message(fe)})
		}
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	items := make([]model.AcceptedItem, len(sub.AcceptedItems))
	for i, it := range sub.AcceptedItems {
		items[i] = model.AcceptedItem(it)
	}

	return &model.DonationPoint{
		Name:                sub.Name,
		Description:         description,
		Address:             sub.Address,
		PostalCode:          sub.PostalCode,
		City:                sub.City,
		Province:            sub.Province,
		AutonomousCommunity: sub.AutonomousCommunity,
		Latitude:            sub.Latitude,
		Longitude:           sub.Longitude,
		GoogleMapsURL:       sub.GoogleMapsURL,
		Phone:               phone,
		Email:               sub.Email,
		Website:             sub.Website,
		Schedule:            schedule,
		AcceptedItems:       items,
		IsActive:            isActive,
	}, nil
}

// fieldPath strips the struct name from the validator namespace: "submission.acceptedItems[1]" -> "acceptedItems[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// coercer reads loosely typed JSON values and records type problems as issues.
type coercer struct {
	obj    map[string]any
	issues []Issue
}

func (c *coercer) add(path, msg string) {
	c.issues = append(c.issues, Issue{Path: path, Message: msg})
}

func (c *coercer) missing(path string) {
	c.add(path, "is required")
}

func (c *coercer) reported(path string) bool {
	for _, is := range c.issues {
		if is.Path == path {
			return true
		}
	}
	return false
}

// requiredString returns the trimmed value; missing and blank values are left to the required tag.
func (c *coercer) requiredString(key string) string {
	raw, ok := c.obj[key]
	if !ok || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		c.add(key, "must be a string")
		return ""
	}
	return strings.TrimSpace(s)
}

// optionalString returns nil for absent, null or blank values.
func (c *coercer) optionalString(key string) *string {
	raw, ok := c.obj[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		c.add(key, "must be a string")
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (c *coercer) optionalBool(key string, def bool) bool {
	raw, ok := c.obj[key]
	if !ok || raw == nil {
		return def
	}
	b, ok := raw.(bool)
	if !ok {
		c.add(key, "must be a boolean")
		return def
	}
	return b
}

// coordinate accepts JSON numbers and numeric strings. The bool is false when the value is absent or unusable.
func (c *coercer) coordinate(key string) (float64, bool) {
	raw, ok := c.obj[key]
	if !ok || raw == nil {
		return 0, false
	}

	var (
		f   float64
		err error
	)
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		f, err = v.Float64()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		err = errors.New("unsupported type")
	}
	if err != nil {
		c.add(key, "must be a number")
		return 0, true
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		c.add(key, "must be a finite number")
		return 0, true
	}
	return f, true
}

// items returns upper-cased, trimmed item tags; enumeration membership is checked by the oneof tag.
func (c *coercer) items(key string) []string {
	raw, ok := c.obj[key]
	if !ok || raw == nil {
		c.missing(key)
		return nil
	}
	arr, ok := raw.([]any)
	if !ok {
		if strs, isStrs := raw.([]string); isStrs {
			arr = make([]any, len(strs))
			for i, s := range strs {
				arr[i] = s
			}
		} else {
			c.add(key, "must be an array of strings")
			return nil
		}
	}

	out := make([]string, 0, len(arr))
	for i, el := range arr {
		s, ok := el.(string)
		if !ok {
			c.add(fmt.Sprintf("%s[%d]", key, i), "must be a string")
			out = append(out, "")
			continue
		}
		out = append(out, strings.ToUpper(strings.TrimSpace(s)))
	}
	return out
}
