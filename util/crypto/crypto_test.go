package crypto

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3creto")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "s3creto" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "s3creto") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "S3creto") {
		t.Error("wrong password accepted")
	}
	if CheckPassword("", "s3creto") {
		t.Error("empty hash accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("mismo")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("mismo")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical")
	}
}
