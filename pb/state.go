package pb

import (
	"errors"
	"fmt"
	"strings"

	"nestris/tetris"

	"google.golang.org/protobuf/types/known/structpb"
)

const emptyCell = '.'

var ErrMalformed = errors.New("malformed message")

// EncodeState converts a game into a Struct:
//
//	{
//	  "board": ["..........", ..., "JJJ.ZZ...."],  // one string per row, top to bottom
//	  "piece": {"shape": "T", "rotation": 0, "col": 3, "row": -1},
//	  "score": 40, "level": 0, "lines": 1
//	}
func EncodeState(t *tetris.Tetris) (*structpb.Struct, error) {
	rows := make([]any, len(t.Board))
	for i, r := range t.Board {
		var sb strings.Builder
		for _, c := range r {
			if c == tetris.Empty {
				sb.WriteRune(emptyCell)
				continue
			}
			sb.WriteString(string(c))
		}
		rows[i] = sb.String()
	}
	s, err := structpb.NewStruct(map[string]any{
		"board": rows,
		"piece": map[string]any{
			"shape":    string(t.Tetromino.Shape),
			"rotation": t.Tetromino.Rotation,
			"col":      t.Tetromino.Col,
			"row":      t.Tetromino.Row,
		},
		"score": t.Score,
		"level": t.Level,
		"lines": t.LinesClear,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to encode state: %w", err)
	}
	return s, nil
}

// DecodeState is the reverse of EncodeState.
func DecodeState(s *structpb.Struct) (*tetris.Tetris, error) {
	fields := s.GetFields()
	rows := fields["board"].GetListValue().GetValues()
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: state without board", ErrMalformed)
	}
	board := make(tetris.Board, len(rows))
	for i, r := range rows {
		cells := r.GetStringValue()
		board[i] = make([]tetris.Shape, 0, len(cells))
		for _, c := range cells {
			if c == emptyCell {
				board[i] = append(board[i], tetris.Empty)
				continue
			}
			shape := tetris.Shape(c)
			if tetris.RotationStates(shape) == nil {
				return nil, fmt.Errorf("%w: unknown shape %q in row %d", ErrMalformed, c, i)
			}
			board[i] = append(board[i], shape)
		}
		if len(board[i]) != len(board[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, i, len(board[i]), len(board[0]))
		}
	}

	piece := fields["piece"].GetStructValue().GetFields()
	shape := tetris.Shape(piece["shape"].GetStringValue())
	states := tetris.RotationStates(shape)
	if states == nil {
		return nil, fmt.Errorf("%w: unknown piece shape %q", ErrMalformed, shape)
	}
	rotation := number(piece["rotation"])
	if rotation < 0 || rotation >= len(states) {
		return nil, fmt.Errorf("%w: rotation %d out of range", ErrMalformed, rotation)
	}

	return &tetris.Tetris{
		Board: board,
		Tetromino: tetris.Tetromino{
			Shape:    shape,
			Rotation: rotation,
			Col:      number(piece["col"]),
			Row:      number(piece["row"]),
		},
		Score:      number(fields["score"]),
		Level:      number(fields["level"]),
		LinesClear: number(fields["lines"]),
	}, nil
}

// NewCommandRequest builds the Command request for an action on a game.
func NewCommandRequest(gameID string, a tetris.Action) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"game_id": structpb.NewStringValue(gameID),
		"action":  structpb.NewStringValue(string(a)),
	}}
}

// ParseCommandRequest returns the game id and the validated action of a Command request.
func ParseCommandRequest(s *structpb.Struct) (string, tetris.Action, error) {
	fields := s.GetFields()
	id := fields["game_id"].GetStringValue()
	if id == "" {
		return "", "", fmt.Errorf("%w: command without game_id", ErrMalformed)
	}
	a, err := tetris.ParseAction(fields["action"].GetStringValue())
	if err != nil {
		return "", "", err
	}
	return id, a, nil
}

func number(v *structpb.Value) int {
	return int(v.GetNumberValue())
}
