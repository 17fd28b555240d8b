// Package ics renders calendar invitations (RFC 5545) for booked meetings.
package ics

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const (
	defaultProductID = "-//go-booking-api//EN"
	defaultUIDDomain = "go-booking-api"
	defaultSummary   = "Meeting"
)

type Invite struct {
	Title          string
	Description    string
	Start          time.Time
	End            time.Time
	OrganizerName  string
	OrganizerEmail string
	AttendeeEmail  string
}

// Builder renders invites. Now and NewUID are the only inputs that are not
// taken from the Invite itself.
type Builder struct {
	ProductID string
	UIDDomain string
	Now       func() time.Time
	NewUID    func() string
}

func NewBuilder() *Builder {
	return &Builder{
		ProductID: defaultProductID,
		UIDDomain: defaultUIDDomain,
		Now:       time.Now,
		NewUID:    func() string { return uuid.NewString() },
	}
}

func (b *Builder) Build(inv Invite) ([]byte, error) {
	if inv.Start.IsZero() || inv.End.IsZero() {
		return nil, fmt.Errorf("ics: invite needs a start and end time")
	}

	summary := strings.TrimSpace(inv.Title)
	if summary == "" {
		summary = defaultSummary
	}
	description := strings.TrimSpace(inv.Description)
	if description == "" {
		description = defaultSummary
	}

	event := ical.NewComponent(ical.CompEvent)
	event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", b.NewUID(), b.UIDDomain))
	event.Props.SetDateTime(ical.PropDateTimeStamp, b.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, inv.Start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, inv.End.UTC())
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetText(ical.PropDescription, description)

	if inv.OrganizerEmail != "" {
		organizer := ical.NewProp(ical.PropOrganizer)
		if inv.OrganizerName != "" {
			organizer.Params.Set(ical.ParamCommonName, inv.OrganizerName)
		}
		organizer.Value = "mailto:" + inv.OrganizerEmail
		event.Props.Add(organizer)
	}

	if inv.AttendeeEmail != "" {
		attendee := ical.NewProp(ical.PropAttendee)
		attendee.Params.Set(ical.ParamRSVP, "TRUE")
		attendee.Value = "mailto:" + inv.AttendeeEmail
		event.Props.Add(attendee)
	}

	event.Props.SetText(ical.PropStatus, "CONFIRMED")
	sequence := ical.NewProp(ical.PropSequence)
	sequence.Value = "0"
	event.Props.Set(sequence)

	alarm := ical.NewComponent(ical.CompAlarm)
	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = "-PT15M"
	alarm.Props.Set(trigger)
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.SetText(ical.PropDescription, "Reminder")
	event.Children = append(event.Children, alarm)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, b.ProductID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "REQUEST")
	cal.Children = append(cal.Children, event)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("ics: encode invite: %w", err)
	}
	return buf.Bytes(), nil
}
