package auth

import "golang.org/x/crypto/bcrypt"

type Hasher struct {
	cost int
}

// NewHasher clamps cost into the range bcrypt accepts.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), h.cost)
	return string(b), err
}

func (h *Hasher) Verify(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
