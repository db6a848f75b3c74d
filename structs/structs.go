package structs

import (
	"fmt"
	"strings"
)

// Cell 描述场地上的一个网格坐标，原点在场地中心，y 轴向上。
type Cell struct {
	X int `json:"x"` // X坐标
	Y int `json:"y"` // Y坐标
}

// Add returns c shifted by dx, dy.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is one of the four headings a snake can take.
type Direction int

const (
	Right Direction = iota // 初始方向
	Up
	Left
	Down
)

var directionNames = [...]string{"right", "up", "left", "down"}

func (d Direction) String() string {
	if d < Right || d > Down {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the unit step of the heading.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirection accepts "up", "down", "left" and "right" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Right, fmt.Errorf("invalid direction '%s' provided", s)
}

// RunState is the top level state of a run.
type RunState int

const (
	Menu RunState = iota
	Running
	Paused
	GameOver
)

var runStateNames = [...]string{"menu", "running", "paused", "game_over"}

func (s RunState) String() string {
	if s < Menu || s > GameOver {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return runStateNames[s]
}

func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventKind names an event emitted by the simulation.
type EventKind string

const (
	EventFoodEaten         EventKind = "food_eaten"
	EventBonusSpawned      EventKind = "bonus_spawned"
	EventBonusEaten        EventKind = "bonus_eaten"
	EventBonusExpired      EventKind = "bonus_expired"
	EventLevelUp           EventKind = "level_up"
	EventSlowMotion        EventKind = "slow_motion"
	EventWrapped           EventKind = "wrapped"
	EventPlacementDegraded EventKind = "placement_degraded"
	EventGameOver          EventKind = "game_over"
)

// Collision causes carried by game_over events.
const (
	CauseSelf     = "self"
	CauseObstacle = "obstacle"
	CauseBoundary = "boundary"
)

// Event 描述一次模拟步中发生的事情，交给渲染、音效等外部协作者处理。
type Event struct {
	Kind     EventKind `json:"kind"`
	Cell     Cell      `json:"cell"`               // 事件发生的位置（碰撞点、食物位置等）
	Points   int       `json:"points,omitempty"`   // 本次得分
	Score    int       `json:"score,omitempty"`    // 事件后的总分
	Level    int       `json:"level,omitempty"`    // 升级后的等级
	Color    string    `json:"color,omitempty"`    // 升级后的蛇颜色
	Cause    string    `json:"cause,omitempty"`    // game_over 的原因
	Attempts int       `json:"attempts,omitempty"` // placement_degraded 的尝试次数
	Active   bool      `json:"active,omitempty"`   // slow_motion 是否开启
}

// BonusView is the read-only view of the bonus food.
type BonusView struct {
	Active      bool  `json:"active"`
	Cell        Cell  `json:"cell"`
	RemainingMs int64 `json:"remaining_ms"`
}

// Snapshot 是模拟状态的只读投影，渲染层只读取它。
type Snapshot struct {
	State      RunState  `json:"state"`
	Mode       string    `json:"mode"`
	Snake      []Cell    `json:"snake"`   // 蛇身，头在前
	Heading    Direction `json:"heading"` // 当前方向
	Color      string    `json:"color"`
	Obstacles  []Cell    `json:"obstacles"`
	Food       Cell      `json:"food"`
	Bonus      BonusView `json:"bonus"`
	Score      int       `json:"score"`
	Level      int       `json:"level"`
	FoodsEaten int       `json:"foods_eaten"`
	SpeedLevel int       `json:"speed_level"`
	DelayMs    int64     `json:"delay_ms"`
	SlowMotion bool      `json:"slow_motion"`
	Degraded   int       `json:"degraded_placements"`
}
