package ingest

import (
	"strconv"

	"arthere/internal/museum"
	"arthere/internal/platform/opendata"
)

// parseCoord coerces a source coordinate string; anything unparsable
// becomes nil rather than dropping the record.
func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// NormalizeCatalog maps raw catalog entries into canonical museums.
// Records without a name are dropped; everything else is kept even when
// coordinates fail to parse.
func NormalizeCatalog(items []opendata.CatalogItem) []museum.Museum {
	out := make([]museum.Museum, 0, len(items))
	for _, it := range items {
		if it.Name == "" {
			continue
		}
		out = append(out, museum.Museum{
			Name:          it.Name,
			Address:       it.Address,
			HomepageURL:   it.HomepageURL,
			Latitude:      parseCoord(it.Latitude),
			Longitude:     parseCoord(it.Longitude),
			ReferenceDate: it.ReferenceDate,
		})
	}
	return out
}

// Ongoing reports whether today falls inside the [start, end] window,
// inclusive on both ends. The dates are fixed-width YYYYMMDD text, so
// plain string comparison orders them correctly.
func Ongoing(startDate, endDate, today string) bool {
	if startDate == "" || endDate == "" {
		return false
	}
	return startDate <= today && today <= endDate
}

// GroupExhibitionsByVenue keeps only exhibitions running today, drops
// items without a venue, and folds the rest into one museum per venue
// with a duplicate-free list of exhibition sequence IDs. Venues come out
// in first-seen order.
func GroupExhibitionsByVenue(items []opendata.ExhibitionItem, today string) []museum.Museum {
	byVenue := make(map[string]*museum.Museum)
	var order []string

	for _, it := range items {
		if it.Place == "" {
			continue
		}
		if !Ongoing(it.StartDate, it.EndDate, today) {
			continue
		}

		m, ok := byVenue[it.Place]
		if !ok {
			m = &museum.Museum{
				Name:      it.Place,
				Address:   it.Area,
				Latitude:  parseCoord(it.GPSY),
				Longitude: parseCoord(it.GPSX),
			}
			byVenue[it.Place] = m
			order = append(order, it.Place)
		}
		if it.Seq != "" {
			m.ExhibitionIDs = museum.MergeExhibitionIDs(m.ExhibitionIDs, []string{it.Seq})
		}
	}

	out := make([]museum.Museum, 0, len(order))
	for _, venue := range order {
		out = append(out, *byVenue[venue])
	}
	return out
}
