package main

import (
	"fmt"
	"strconv"
	"strings"

	"shelf/internal/library"
)

func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return id, nil
}

func yearLabel(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func titleLine(item *library.Item) string {
	if item.Year != 0 {
		return fmt.Sprintf("%s (%d)", item.Title, item.Year)
	}
	return item.Title
}

func watchedLabel(watched bool) string {
	if watched {
		return "watched"
	}
	return "unwatched"
}

func itemRows(items []*library.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			yearLabel(item.Year),
			string(item.Format),
			watchedLabel(item.Watched),
			item.Location,
		})
	}
	return rows
}

var itemHeaders = []string{"ID", "Title", "Year", "Format", "Watched", "Location"}

var itemAligns = []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}
