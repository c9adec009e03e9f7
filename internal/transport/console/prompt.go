package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/pkg/errors"
)

var (
	ErrInputClosed     = errors.New("input closed")
	errInvalidAnswer   = errors.New("answer with 'y' or 'n'")
	errInvalidPosition = errors.New("enter two integers: x y")
)

func (s *session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if ok := s.scanner.Scan(); !ok {
		if err := s.scanner.Err(); err != nil {
			return "", errors.WithMessage(err, "scan input")
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

func (s *session) askYesNo(prompt string) (bool, error) {
	for {
		line, err := s.readLine(prompt + " (y/n): ")
		if err != nil {
			return false, err
		}
		answer, err := parseYesNo(line)
		if err == nil {
			return answer, nil
		}
		fmt.Fprintln(s.out, err.Error())
	}
}

func (s *session) askCoords(prompt string) (domain.Coords, error) {
	for {
		line, err := s.readLine(prompt + " (x y): ")
		if err != nil {
			return domain.Coords{}, err
		}
		c, err := parseCoords(line)
		if err == nil {
			return c, nil
		}
		fmt.Fprintln(s.out, err.Error())
	}
}

func parseYesNo(line string) (bool, error) {
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errInvalidAnswer
	}
}

func parseCoords(line string) (domain.Coords, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return domain.Coords{}, errInvalidPosition
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Coords{}, errInvalidPosition
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return domain.Coords{}, errInvalidPosition
	}
	return domain.Coords{X: x, Y: y}, nil
}
