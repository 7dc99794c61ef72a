package repository

import "testing"

func TestSearchLikeConditionByDialect(t *testing.T) {
	cond, args := searchLikeConditionByDialect("sqlite", "rose", "name", "description")
	if cond != "name LIKE ? OR description LIKE ?" {
		t.Fatalf("unexpected sqlite condition: %s", cond)
	}
	if len(args) != 2 || args[0] != "%rose%" || args[1] != "%rose%" {
		t.Fatalf("unexpected args: %v", args)
	}

	cond, args = searchLikeConditionByDialect("postgres", " tulip ", "name")
	if cond != "name ILIKE ?" {
		t.Fatalf("unexpected postgres condition: %s", cond)
	}
	if len(args) != 1 || args[0] != "%tulip%" {
		t.Fatalf("unexpected args: %v", args)
	}

	cond, args = searchLikeConditionByDialect("", "x", "name", " ")
	if cond != "name LIKE ?" || len(args) != 1 {
		t.Fatalf("blank columns should be skipped, got %q %v", cond, args)
	}
}
