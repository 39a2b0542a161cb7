// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"slices"
	"testing"
)

func stringPointer(value string) *string { return &value }

func TestGroupRowsFoldsJoinRows(t *testing.T) {
	rows := []catalogRow{
		{groupID: 1, groupImage: "hero", title: stringPointer("A"), subtitle: stringPointer("a"), itemImage: stringPointer("ia")},
		{groupID: 1, groupImage: "hero", title: stringPointer("B"), subtitle: nil, itemImage: nil},
		{groupID: 4, groupImage: "empty"},
		{groupID: 2, groupImage: "tail", title: stringPointer("C"), subtitle: stringPointer("c"), itemImage: stringPointer("ic")},
	}

	groups := groupRows(rows)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0].ImageRef != "hero" || len(groups[0].Items) != 2 {
		t.Errorf("group 0 = %+v", groups[0])
	}
	if len(groups[1].Items) != 0 {
		t.Errorf("group without items should be empty, got %+v", groups[1].Items)
	}
	if groups[0].Items[1].Subtitle != "" || groups[0].Items[1].ImageRef != "" {
		t.Errorf("NULL columns should decode as empty: %+v", groups[0].Items[1])
	}
	if got := titlesOf(groups); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("titles = %v", got)
	}
}

func TestGroupRowsEmpty(t *testing.T) {
	if groups := groupRows(nil); len(groups) != 0 {
		t.Errorf("groupRows(nil) = %v, want empty", groups)
	}
}
