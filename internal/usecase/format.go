package usecase

import (
	"order_desk/internal/domain/entities"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"
)

const orderDateLayout = "02/01/2006 (03:04:05 pm MST)"

var filenameUnsafe = regexp.MustCompile(`[:/\s]+`)

// FormatOrderDate renders t as "dd/mm/yyyy (hh:mm:ss pm TZ)" in loc.
func FormatOrderDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(orderDateLayout)
}

// ExportFilename builds "<order name> - <first> <last> <date>.<ext>" with ':', '/' and
// whitespace in the date replaced by '-'.
func ExportFilename(orderName string, c *entities.Customer, createdAt time.Time, loc *time.Location, ext string) string {
	date := filenameUnsafe.ReplaceAllString(FormatOrderDate(createdAt, loc), "-")
	name := ""
	if c != nil {
		name = c.FullName()
	}
	return orderName + " - " + name + " " + date + "." + ext
}

// FormatAddress renders "addr1, addr2,\ncity, province, country - zip", or
// entities.NotProvided when there is no address.
func FormatAddress(a *entities.Address) string {
	if a == nil {
		return entities.NotProvided
	}
	empty := entities.Address{}
	if *a == empty {
		return entities.NotProvided
	}
	return a.Address1 + ", " + a.Address2 + ",\n" + a.City + ", " + a.Province + ", " + a.Country + " - " + a.Zip
}

func orNotProvided(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return entities.NotProvided
	}
	return *s
}
