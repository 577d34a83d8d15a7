package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gridtactics.dev/internal/events"
	"gridtactics.dev/internal/game"
	persistlog "gridtactics.dev/internal/persistence/log"
	"gridtactics.dev/internal/session"
	"gridtactics.dev/internal/snapshot"
	"gridtactics.dev/internal/tuning"
)

func main() {
	var (
		rulesPath = flag.String("rules", "./configs/rules.yaml", "rules config path")
		loadPath  = flag.String("load", "", "save file to resume from (optional)")
		matchLog  = flag.String("matchlog", "", "write the event stream to this .jsonl.zst file (optional)")
	)
	flag.Parse()

	rules, err := tuning.Load(*rulesPath)
	if err != nil {
		log.Fatalf("load rules: %v", err)
	}

	bus := events.NewBus()
	subscribeConsole(bus)

	var st *game.State
	if *loadPath != "" {
		save, err := snapshot.ReadFile(*loadPath)
		if err != nil {
			log.Fatalf("load save: %v", err)
		}
		st, err = game.Restore(rules, bus, save)
		if err != nil {
			log.Fatalf("restore save: %v", err)
		}
		log.Printf("resumed game %s at turn %d", st.GameID, st.TurnNumber)
	} else {
		st, err = game.New(rules, bus)
		if err != nil {
			log.Fatalf("new game: %v", err)
		}
	}

	if *matchLog != "" {
		w, err := persistlog.NewMatchWriter(*matchLog)
		if err != nil {
			log.Fatalf("open match log: %v", err)
		}
		defer w.Close()
		rec := persistlog.Attach(bus, game.EventNames, w)
		defer rec.Detach()
	}

	turns := game.NewTurnManager(st)
	sess := session.New(st, turns)
	sess.Start()
	defer sess.Stop()

	if st.Status == game.StatusReady {
		_ = sess.Do(func(_ *game.State, tm *game.TurnManager) { tm.StartTurn() })
	}

	fmt.Println(`hot-seat match running; type "help" for commands`)
	repl(sess)
}

func repl(sess *session.Session) {
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		if err := dispatch(sess, fields); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func dispatch(sess *session.Session, fields []string) error {
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		printHelp()
		return nil
	case "board":
		return sess.Do(func(st *game.State, _ *game.TurnManager) { printBoard(st) })
	case "status":
		return sess.Do(func(st *game.State, tm *game.TurnManager) { printStatus(st, tm) })
	case "build":
		x, y, err := coords(args, 1)
		if err != nil {
			return err
		}
		return sess.Do(func(st *game.State, _ *game.TurnManager) {
			if u := st.CreateUnit(args[0], st.CurrentPlayer, x, y); u == nil {
				fmt.Println("build rejected")
			}
		})
	case "move":
		x, y, err := coords(args, 1)
		if err != nil {
			return err
		}
		return sess.Do(func(st *game.State, _ *game.TurnManager) {
			if !st.MoveUnit(args[0], x, y) {
				fmt.Println("move rejected")
			}
		})
	case "attack":
		x, y, err := coords(args, 1)
		if err != nil {
			return err
		}
		return sess.Do(func(st *game.State, _ *game.TurnManager) {
			if !st.AttackUnit(args[0], x, y) {
				fmt.Println("attack rejected")
			}
		})
	case "gather":
		if len(args) != 1 {
			return fmt.Errorf("usage: gather <unit>")
		}
		return sess.Do(func(st *game.State, _ *game.TurnManager) {
			if res := st.Resources().Gather(args[0]); !res.Success {
				fmt.Println("gather rejected:", res.Reason)
			}
		})
	case "moves":
		if len(args) != 1 {
			return fmt.Errorf("usage: moves <unit>")
		}
		return sess.Do(func(st *game.State, _ *game.TurnManager) {
			for _, opt := range st.ValidMovePositions(args[0]) {
				fmt.Printf("  (%d,%d) cost=%d\n", opt.Pos.X, opt.Pos.Y, opt.Cost)
			}
		})
	case "targets":
		if len(args) != 1 {
			return fmt.Errorf("usage: targets <unit>")
		}
		return sess.Do(func(st *game.State, _ *game.TurnManager) {
			for _, t := range st.ValidAttackTargets(args[0]) {
				fmt.Printf("  %s %s at (%d,%d) damage=%d\n", t.TargetType, t.TargetID, t.Pos.X, t.Pos.Y, t.Damage)
			}
		})
	case "action":
		return sess.Do(func(_ *game.State, tm *game.TurnManager) {
			if !tm.UsePlayerAction() {
				fmt.Println("no actions remaining")
			}
		})
	case "phase":
		return sess.Do(func(_ *game.State, tm *game.TurnManager) { tm.NextPhase() })
	case "end":
		return sess.Do(func(_ *game.State, tm *game.TurnManager) { tm.ForceEndTurn() })
	case "surrender":
		return sess.Do(func(st *game.State, _ *game.TurnManager) { st.PlayerSurrender(st.CurrentPlayer) })
	case "draw":
		return sess.Do(func(st *game.State, _ *game.TurnManager) { st.DeclareDraw() })
	case "save":
		if len(args) != 1 {
			return fmt.Errorf("usage: save <path>")
		}
		var save snapshot.SaveV1
		if err := sess.Do(func(st *game.State, _ *game.TurnManager) { save = st.BuildSave() }); err != nil {
			return err
		}
		if err := snapshot.WriteFile(args[0], save); err != nil {
			return err
		}
		fmt.Println("saved to", args[0])
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func coords(args []string, offset int) (int, int, error) {
	if len(args) != offset+2 {
		return 0, 0, fmt.Errorf("expected <id> <x> <y>")
	}
	x, err := strconv.Atoi(args[offset])
	if err != nil {
		return 0, 0, fmt.Errorf("bad x: %q", args[offset])
	}
	y, err := strconv.Atoi(args[offset+1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad y: %q", args[offset+1])
	}
	return x, y, nil
}

func printHelp() {
	fmt.Print(`commands:
  board | status | moves <unit> | targets <unit>
  build <type> <x> <y>     create a unit near your base (build cost in energy)
  move <unit> <x> <y>      move (1 action per grid step)
  attack <unit> <x> <y>    attack an adjacent enemy unit or base
  gather <unit>            harvest an adjacent resource node (resource phase)
  action | phase | end     spend a player action / next phase / end turn
  surrender | draw
  save <path> | quit
`)
}

func printStatus(st *game.State, tm *game.TurnManager) {
	fmt.Printf("game %s: %s, turn %d, player %d, %s phase, %ds left\n",
		st.GameID, st.Status, st.TurnNumber, st.CurrentPlayer, st.CurrentPhase, tm.TimeRemaining())
	for id := 1; id <= 2; id++ {
		p := st.Player(id)
		fmt.Printf("  player %d: energy=%d gathered=%d actions=%d units=%d base=%dhp\n",
			id, p.Energy, p.ResourcesGathered, p.ActionsRemaining, p.UnitCount(), st.BaseOf(id).Health)
	}
}

// printBoard draws the grid: '.' empty, '#' resource node, 'A'/'B' bases,
// unit type initial (upper case player 1, lower case player 2).
func printBoard(st *game.State) {
	b := st.Board()
	nodeAt := map[game.Vec2i]bool{}
	for _, n := range st.Resources().Nodes() {
		if n.Value > 0 {
			nodeAt[n.Pos] = true
		}
	}
	for y := 0; y < b.Height(); y++ {
		row := make([]byte, 0, b.Width())
		for x := 0; x < b.Width(); x++ {
			switch {
			case st.UnitAt(x, y) != nil:
				u := st.UnitAt(x, y)
				c := u.Type[0]
				if u.PlayerID == 1 {
					c -= 'a' - 'A'
				}
				row = append(row, c)
			case st.BaseAt(x, y) != nil:
				row = append(row, byte('A'+st.BaseAt(x, y).PlayerID-1))
			case nodeAt[game.Vec2i{X: x, Y: y}]:
				row = append(row, '#')
			default:
				row = append(row, '.')
			}
		}
		fmt.Println(string(row))
	}
}

// subscribeConsole prints the events a hot-seat player wants to see as they
// happen. Handles are deliberately kept: teardown is process exit.
func subscribeConsole(bus *events.Bus) {
	bus.On(game.EventTurnStarted, func(p any) {
		e := p.(game.TurnStarted)
		fmt.Printf("-- turn %d: player %d (%s phase)\n", e.TurnNumber, e.Player, e.Phase)
	})
	bus.On(game.EventPhaseChanged, func(p any) {
		e := p.(game.PhaseChanged)
		fmt.Printf("-- player %d: %s phase\n", e.Player, e.Phase)
	})
	bus.On(game.EventResourcePhaseComplete, func(p any) {
		e := p.(game.ResourcePhaseComplete)
		fmt.Printf("   player %d income +%d energy (bonus %d)\n", e.Player, e.EnergyGained, e.ResourceBonus)
	})
	bus.On(game.EventUnitAttacked, func(p any) {
		e := p.(game.UnitAttacked)
		fmt.Printf("   %s hit %s %s for %d (%d hp left)\n", e.AttackerID, e.TargetType, e.TargetID, e.Damage, e.TargetHealth)
	})
	bus.On(game.EventBaseDestroyed, func(p any) {
		e := p.(game.BaseDestroyed)
		fmt.Printf("   base %s of player %d destroyed!\n", e.BaseID, e.PlayerID)
	})
	bus.On(game.EventTurnTimeExpired, func(p any) {
		e := p.(game.TurnTimeExpired)
		fmt.Printf("   player %d ran out of time\n", e.Player)
	})
	bus.On(game.EventGameEnded, func(p any) {
		e := p.(game.GameEnded)
		if e.Winner == 0 {
			fmt.Println("== game over: draw")
			return
		}
		fmt.Printf("== game over: player %d wins\n", e.Winner)
	})
}
