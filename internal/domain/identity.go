package domain

import "github.com/google/uuid"

// Derived identifiers are UUIDv5 (SHA-1 over the DNS namespace), so creating
// the same entity twice yields the same ID and the second attempt collides in
// the store instead of producing a silent duplicate.

// CustomerID derives the customer identifier from the email address.
func CustomerID(emailAddress string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(emailAddress))
}

// ProductID derives the product identifier from the (name, category) pair.
//
// The input is the literal colon-joined concatenation, which makes
// ("A:B", "C") and ("A", "B:C") derive the same ID. Known ambiguity, kept for
// ID compatibility with existing data; a length-prefixed encoding would change
// every product ID already issued.
func ProductID(name, category string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name+":"+category))
}
