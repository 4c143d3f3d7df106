package events

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eventlane/server/internal/domain/datetime"
)

// Sort orders for the public event search.
type Sort string

const (
	SortEventDate Sort = "EVENT_DATE"
	SortViews     Sort = "VIEWS"
)

// AdminFilters narrows the administrative event search.
type AdminFilters struct {
	Users      []int64
	States     []State
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
}

// PublicFilters narrows the public event search. Only published events are
// ever returned regardless of filters.
type PublicFilters struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          Sort
}

func ParseAdminFilters(values url.Values) (AdminFilters, error) {
	filters := AdminFilters{}

	userIDs, err := parseIDList("users", values.Get("users"))
	if err != nil {
		return filters, err
	}
	filters.Users = userIDs

	for _, raw := range splitList(values.Get("states")) {
		state := State(strings.ToUpper(raw))
		switch state {
		case StatePending, StatePublished, StateCanceled:
			filters.States = append(filters.States, state)
		default:
			return filters, FieldError{Field: "states", Message: "unknown event state " + raw}
		}
	}

	categoryIDs, err := parseIDList("categories", values.Get("categories"))
	if err != nil {
		return filters, err
	}
	filters.Categories = categoryIDs

	filters.RangeStart, err = parseDateTime("rangeStart", values.Get("rangeStart"))
	if err != nil {
		return filters, err
	}
	filters.RangeEnd, err = parseDateTime("rangeEnd", values.Get("rangeEnd"))
	if err != nil {
		return filters, err
	}

	return filters, nil
}

func ParsePublicFilters(values url.Values) (PublicFilters, error) {
	filters := PublicFilters{Sort: SortEventDate}

	filters.Text = strings.TrimSpace(values.Get("text"))

	categoryIDs, err := parseIDList("categories", values.Get("categories"))
	if err != nil {
		return filters, err
	}
	filters.Categories = categoryIDs

	if raw := strings.TrimSpace(values.Get("paid")); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, FieldError{Field: "paid", Message: "must be a boolean"}
		}
		filters.Paid = &paid
	}

	filters.RangeStart, err = parseDateTime("rangeStart", values.Get("rangeStart"))
	if err != nil {
		return filters, err
	}
	filters.RangeEnd, err = parseDateTime("rangeEnd", values.Get("rangeEnd"))
	if err != nil {
		return filters, err
	}
	if filters.RangeStart != nil && filters.RangeEnd != nil && filters.RangeEnd.Before(*filters.RangeStart) {
		return filters, FieldError{Field: "rangeEnd", Message: "must not be before rangeStart"}
	}

	if raw := strings.TrimSpace(values.Get("onlyAvailable")); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, FieldError{Field: "onlyAvailable", Message: "must be a boolean"}
		}
		filters.OnlyAvailable = available
	}

	if raw := strings.TrimSpace(values.Get("sort")); raw != "" {
		switch Sort(strings.ToUpper(raw)) {
		case SortEventDate:
			filters.Sort = SortEventDate
		case SortViews:
			filters.Sort = SortViews
		default:
			return filters, FieldError{Field: "sort", Message: "must be EVENT_DATE or VIEWS"}
		}
	}

	return filters, nil
}

func parseDateTime(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := datetime.Parse(value)
	if err != nil {
		return nil, FieldError{Field: field, Message: "must match " + datetime.Layout}
	}
	return &parsed, nil
}

func parseIDList(field, value string) ([]int64, error) {
	parts := splitList(value)
	if len(parts) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, FieldError{Field: field, Message: "must be positive numbers"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
