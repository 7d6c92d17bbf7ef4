package chatbot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type valueFunc func(p Profile, now time.Time) string

type placeholder struct {
	label string
	value valueFunc
}

// namedZones maps city placeholders to IANA zone names.
var namedZones = []struct {
	label string
	zone  string
}{
	{"{time_new_york}", "America/New_York"},
	{"{time_london}", "Europe/London"},
	{"{time_tokyo}", "Asia/Tokyo"},
	{"{time_bangkok}", "Asia/Bangkok"},
	{"{time_sydney}", "Australia/Sydney"},
	{"{time_paris}", "Europe/Paris"},
	{"{time_berlin}", "Europe/Berlin"},
	{"{time_singapore}", "Asia/Singapore"},
	{"{time_los_angeles}", "America/Los_Angeles"},
	{"{time_toronto}", "America/Toronto"},
}

var contextPlaceholders = []placeholder{
	{"{player_name}", func(p Profile, _ time.Time) string { return p.Name }},
	{"{player_uuid}", func(p Profile, _ time.Time) string { return p.UUID.String() }},
	{"{player_uuid_short}", func(p Profile, _ time.Time) string { return p.ShortUUID() }},
	{"{player_displayname}", func(p Profile, _ time.Time) string { return p.displayName() }},
	{"{player_ip}", func(p Profile, _ time.Time) string { return p.address() }},
	{"{player_gamemode}", func(p Profile, _ time.Time) string { return p.gameMode() }},
	{"{player_world}", func(p Profile, _ time.Time) string { return p.World }},
	{"{player_location}", func(p Profile, _ time.Time) string {
		return fmt.Sprintf("X: %.1f, Y: %.1f, Z: %.1f", p.Position.X, p.Position.Y, p.Position.Z)
	}},
	{"{player_health}", func(p Profile, _ time.Time) string { return formatStat(p.Health) }},
	{"{player_max_health}", func(p Profile, _ time.Time) string { return formatStat(p.MaxHealth) }},
	{"{player_food_level}", func(p Profile, _ time.Time) string { return strconv.Itoa(p.FoodLevel) }},
	{"{player_exp_level}", func(p Profile, _ time.Time) string { return strconv.Itoa(p.ExpLevel) }},
}

// Resolver substitutes placeholders in response templates. The placeholder
// table is built once by NewResolver and is safe for concurrent use.
type Resolver struct {
	table []placeholder
}

// NewResolver builds the placeholder table. server is the zone reported by
// {time_server}; nil means time.Local. Named zones that cannot be loaded are
// left out of the table so their placeholders pass through unchanged.
func NewResolver(server *time.Location, logger *zap.Logger) *Resolver {
	logger = orNop(logger)
	if server == nil {
		server = time.Local
	}

	table := make([]placeholder, 0, len(contextPlaceholders)+3+len(namedZones)+2*len(Offsets()))
	table = append(table, contextPlaceholders...)
	table = append(table,
		zonePlaceholder("{time_server}", server),
		zonePlaceholder("{time_utc}", time.UTC),
		zonePlaceholder("{time_gmt}", time.FixedZone("GMT", 0)),
	)
	for _, named := range namedZones {
		loc, err := time.LoadLocation(named.zone)
		if err != nil {
			logger.Warn("time zone unavailable", zap.String("zone", named.zone), zap.Error(err))
			continue
		}
		table = append(table, zonePlaceholder(named.label, loc))
	}
	for _, offset := range Offsets() {
		loc := offset.Location()
		table = append(table,
			zonePlaceholder(ZoneLabel("utc", offset.Hour, offset.Minute), loc),
			zonePlaceholder(ZoneLabel("gmt", offset.Hour, offset.Minute), loc),
		)
	}
	return &Resolver{table: table}
}

// Resolve replaces every known placeholder in template. Tokens that are not
// in the table are left as they are.
func (r *Resolver) Resolve(template string, p Profile, now time.Time) string {
	if !strings.Contains(template, "{") {
		return template
	}
	out := template
	for _, ph := range r.table {
		if !strings.Contains(out, ph.label) {
			continue
		}
		out = strings.ReplaceAll(out, ph.label, ph.value(p, now))
	}
	return out
}

// Labels lists every placeholder the resolver knows, in substitution order.
func (r *Resolver) Labels() []string {
	labels := make([]string, len(r.table))
	for i, ph := range r.table {
		labels[i] = ph.label
	}
	return labels
}

func zonePlaceholder(label string, loc *time.Location) placeholder {
	return placeholder{label: label, value: func(_ Profile, now time.Time) string {
		return FormatTime(now, loc)
	}}
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
