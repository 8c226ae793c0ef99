package uci

import "fmt"

// Move encodes a long algebraic move in a compact uint16:
//
//	bits 0-5:   from square (0-63, a1=0 ... h8=63)
//	bits 6-11:  to square (0-63)
//	bits 12-14: promotion piece (0=none, 1=q, 2=r, 3=b, 4=n)
type Move uint16

const (
	moveFromMask   = 0x3F
	moveToMask     = 0xFC0
	movePromoMask  = 0x7000
	moveToShift    = 6
	movePromoShift = 12
)

// Promotion piece types
const (
	PromoNone   = 0
	PromoQueen  = 1
	PromoRook   = 2
	PromoBishop = 3
	PromoKnight = 4
)

// NoMove is what engines report as "bestmove (none)" when the side to move
// is mated or stalemated.
const NoMove = "(none)"

var promoChars = []byte{'q', 'r', 'b', 'n'}

// EncodeMove creates a Move from square indices and an optional promotion.
// Out-of-range squares give the zero Move.
func EncodeMove(from, to int, promo byte) Move {
	if from < 0 || from > 63 || to < 0 || to > 63 || promo > PromoKnight {
		return 0
	}
	return Move(uint16(from) | uint16(to)<<moveToShift | uint16(promo)<<movePromoShift)
}

// From returns the source square index.
func (m Move) From() int { return int(m & moveFromMask) }

// To returns the destination square index.
func (m Move) To() int { return int((m & moveToMask) >> moveToShift) }

// Promotion returns the promotion piece (0=none, 1=Q, 2=R, 3=B, 4=N).
func (m Move) Promotion() byte { return byte((m & movePromoMask) >> movePromoShift) }

// String renders the move in UCI notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	from, to := m.From(), m.To()
	b := []byte{
		byte('a' + from%8), byte('1' + from/8),
		byte('a' + to%8), byte('1' + to/8),
	}
	if p := m.Promotion(); p > 0 {
		b = append(b, promoChars[p-1])
	}
	return string(b)
}

// ParseMove parses a 4 or 5 character long algebraic token: two squares
// followed by an optional lowercase promotion letter.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return 0, fmt.Errorf("%w: move %q must be 4 or 5 characters", ErrParseFailure, s)
	}
	from, ok := parseSquare(s[0], s[1])
	if !ok {
		return 0, fmt.Errorf("%w: invalid from square in %q", ErrParseFailure, s)
	}
	to, ok := parseSquare(s[2], s[3])
	if !ok {
		return 0, fmt.Errorf("%w: invalid to square in %q", ErrParseFailure, s)
	}

	var promo byte = PromoNone
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = PromoQueen
		case 'r':
			promo = PromoRook
		case 'b':
			promo = PromoBishop
		case 'n':
			promo = PromoKnight
		default:
			return 0, fmt.Errorf("%w: invalid promotion piece %q in %q", ErrParseFailure, s[4], s)
		}
	}
	return EncodeMove(from, to, promo), nil
}

func parseSquare(file, rank byte) (int, bool) {
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, false
	}
	return int(rank-'1')*8 + int(file-'a'), true
}
