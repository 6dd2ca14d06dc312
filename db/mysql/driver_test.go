package mysql

import "testing"

func TestOpenRejectsEmptyDSN(t *testing.T) {
	if _, err := Open("", 0, 0, 0); err == nil {
		t.Fatal("expected an error for an empty dsn")
	}
}
