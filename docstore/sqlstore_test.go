package docstore

import "testing"

func TestFilterToSQL(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		wantCond string
		wantArgs []any
	}{
		{
			name:     "equality compiles to =",
			filter:   Where("status", OpEqual, "missing"),
			wantCond: "JSON_EXTRACT(data, ?) = CAST(? AS JSON)",
			wantArgs: []any{"$.status", `"missing"`},
		},
		{
			name:     "inequality keeps its operator",
			filter:   Where("completed", OpNotEqual, true),
			wantCond: "JSON_EXTRACT(data, ?) != CAST(? AS JSON)",
			wantArgs: []any{"$.completed", "true"},
		},
		{
			name:     "numbers compare as JSON, not strings",
			filter:   Where("priority", OpGreaterEqual, 2),
			wantCond: "JSON_EXTRACT(data, ?) >= CAST(? AS JSON)",
			wantArgs: []any{"$.priority", "2"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cond, args, err := filterToSQL(tc.filter)
			if err != nil {
				t.Fatalf("filterToSQL: %v", err)
			}
			if cond != tc.wantCond {
				t.Errorf("cond = %q, want %q", cond, tc.wantCond)
			}
			if len(args) != len(tc.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tc.wantArgs)
			}
			for i := range args {
				if args[i] != tc.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tc.wantArgs[i])
				}
			}
		})
	}
}

func TestFilterToSQL_RejectsUnknownOp(t *testing.T) {
	if _, _, err := filterToSQL(Where("status", Op("~="), "x")); err == nil {
		t.Fatal("unknown operator accepted")
	}
}
