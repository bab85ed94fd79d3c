package tripstats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ridereport/tripstats/csv"
	"github.com/ridereport/tripstats/warnings"
)

// row builds a six-field record line around the pickup zone and pickup time.
func row(zone, pickupTime string) string {
	return "T1," + zone + ",ZoneB," + pickupTime + ",1.0,5.00"
}

func TestParseRecord(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		line     string
		expected Record
		wantErr  error
	}{
		{
			desc:     "basic 24-hour row",
			line:     "T1,ZoneA,ZoneB,2024-01-01 08:15,3.2,12.50",
			expected: Record{PickupZone: "ZONEA", PickupHour: 8},
		},
		{
			desc:     "zone is upper-cased",
			line:     row("zonea", "2024-01-01 08:45"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 8},
		},
		{
			desc:     "zone is trimmed",
			line:     row("  Zone A\t", "2024-01-01 09:05"),
			expected: Record{PickupZone: "ZONE A", PickupHour: 9},
		},
		{
			desc:     "extra fields are tolerated",
			line:     row("ZoneA", "2024-01-01 10:00") + ",extra,fields",
			expected: Record{PickupZone: "ZONEA", PickupHour: 10},
		},
		{
			desc:     "quoted zone keeps its separator",
			line:     `T1,"Zone, A",ZoneB,2024-01-01 11:00,1.0,5.00`,
			expected: Record{PickupZone: "ZONE, A", PickupHour: 11},
		},
		{
			desc:     "doubled quote inside quoted zone",
			line:     `T1,"Zone ""A""",ZoneB,2024-01-01 11:00,1.0,5.00`,
			expected: Record{PickupZone: `ZONE "A"`, PickupHour: 11},
		},
		{
			desc:     "single digit 24-hour value",
			line:     row("ZoneA", "2024-01-01 9:05"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 9},
		},
		{
			desc:     "midnight on the 24-hour clock",
			line:     row("ZoneA", "2024-01-01 0:59"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 0},
		},
		{
			desc:     "last hour on the 24-hour clock",
			line:     row("ZoneA", "2024-01-01 23:59"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 23},
		},
		{
			desc:     "PM hour is shifted",
			line:     row("ZoneA", "2024-01-01 08:15 PM"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 20},
		},
		{
			desc:     "12 PM is noon",
			line:     row("ZoneA", "2024-01-01 12:00 PM"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 12},
		},
		{
			desc:     "12 AM is midnight",
			line:     row("ZoneA", "2024-01-01 12:00 AM"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 0},
		},
		{
			desc:     "AM hour is unchanged",
			line:     row("ZoneA", "2024-01-01 1:05 AM"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 1},
		},
		{
			desc:     "meridiem token is case-insensitive",
			line:     row("ZoneA", "2024-01-01 08:15 pm"),
			expected: Record{PickupZone: "ZONEA", PickupHour: 20},
		},
		{
			desc:    "header row",
			line:    "TripID,PickupZoneID,DropoffZoneID,PickupDateTime,TripDistance,FareAmount",
			wantErr: warnings.HeaderRow{},
		},
		{
			desc:    "header row in a different case",
			line:    "tripid,PickupZoneID,DropoffZoneID,PickupDateTime,TripDistance,FareAmount",
			wantErr: warnings.HeaderRow{},
		},
		{
			desc:    "header row with surrounding whitespace",
			line:    "  TripId  ,PickupZoneID,DropoffZoneID,PickupDateTime,TripDistance,FareAmount",
			wantErr: warnings.HeaderRow{},
		},
		{
			desc:    "too few fields",
			line:    "T1,ZoneA,ZoneB,2024-01-01 08:15,3.2",
			wantErr: warnings.TooFewFields{NumFields: 5},
		},
		{
			desc:    "empty pickup zone",
			line:    "T4,,ZoneB,2024-01-01 10:00,1.0,4.00",
			wantErr: warnings.EmptyPickupZone{},
		},
		{
			desc:    "whitespace pickup zone",
			line:    row("   ", "2024-01-01 10:00"),
			wantErr: warnings.EmptyPickupZone{},
		},
		{
			desc:    "timestamp without a colon",
			line:    row("ZoneA", "2024-01-01"),
			wantErr: warnings.BadPickupTime{Value: "2024-01-01"},
		},
		{
			desc:    "no digits before the colon",
			line:    row("ZoneA", "2024-01-01 :15"),
			wantErr: warnings.BadPickupTime{Value: "2024-01-01 :15"},
		},
		{
			desc:    "three digits before the colon",
			line:    row("ZoneA", "2024-01-01 123:15"),
			wantErr: warnings.BadPickupTime{Value: "2024-01-01 123:15"},
		},
		{
			desc:    "24-hour value out of range",
			line:    row("ZoneA", "2024-01-01 24:00"),
			wantErr: warnings.BadPickupTime{Value: "2024-01-01 24:00"},
		},
		{
			desc:    "12-hour value of zero",
			line:    row("ZoneA", "2024-01-01 0:30 AM"),
			wantErr: warnings.BadPickupTime{Value: "2024-01-01 0:30 AM"},
		},
		{
			desc:    "12-hour value above twelve",
			line:    row("ZoneA", "2024-01-01 13:00 PM"),
			wantErr: warnings.BadPickupTime{Value: "2024-01-01 13:00 PM"},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			actual, err := ParseRecord(tc.line)
			if err != tc.wantErr {
				t.Errorf("got error %v, want %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(actual, tc.expected); diff != "" {
				t.Errorf("not the same: \n%+v != \n%+v\ndiff:%s", actual, tc.expected, diff)
			}
		})
	}
}

func TestParseRecordDialect(t *testing.T) {
	p := Parser{Dialect: csv.Dialect{Separator: ';'}}
	actual, err := p.Parse(0, "T1;Zone,A;ZoneB;2024-01-01 08:15;3.2;12.50")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := Record{PickupZone: "ZONE,A", PickupHour: 8}
	if diff := cmp.Diff(actual, expected); diff != "" {
		t.Errorf("not the same: \n%+v != \n%+v\ndiff:%s", actual, expected, diff)
	}
}

func TestParseAnnotatesLineNumber(t *testing.T) {
	_, err := Parser{}.Parse(12, "T1,ZoneA,ZoneB")
	want := warnings.TooFewFields{LineNumber: 12, NumFields: 3}
	if err != want {
		t.Errorf("got error %v, want %v", err, want)
	}
	w, ok := err.(warnings.RowWarning)
	if !ok {
		t.Fatalf("error %T does not implement warnings.RowWarning", err)
	}
	if got := w.Line(); got != 12 {
		t.Errorf("got line %d, want 12", got)
	}
}
