package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lunarhall/chronicle/internal/archive"
	"github.com/lunarhall/chronicle/internal/config"
	"github.com/lunarhall/chronicle/internal/database"
	"github.com/lunarhall/chronicle/internal/engine"
	"github.com/lunarhall/chronicle/internal/logger"
	"github.com/lunarhall/chronicle/internal/sheet"
	"github.com/lunarhall/chronicle/internal/stats"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "data/chronicle.yaml", "Path to app config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	dbFile := flag.String("db", "", "Path to archive database file (overrides config)")
	seedFile := flag.String("seed", "", "Path to seed document YAML file (overrides config)")
	listArchives := flag.Bool("list", false, "List archives and exit")
	snapshotName := flag.String("snapshot", "", "Create a named snapshot of the current state")
	loadID := flag.String("load", "", "Load the archive with the given id")
	deleteID := flag.String("delete", "", "Delete the archive with the given id")
	exportFile := flag.String("export", "", "Export the current document as JSON to the given file")
	importSpells := flag.String("import-spells", "", "Import spells from a CSV file")
	endTurn := flag.Bool("end-turn", false, "Advance the combat turn")
	castID := flag.String("cast", "", "Cast the cooldown skill with the given id")
	resetCDs := flag.Bool("reset-cds", false, "Reset every skill cooldown")
	toggle := flag.String("toggle", "", "Toggle the named condition")
	undo := flag.Bool("undo", false, "Undo the last risky action")
	rollExpr := flag.String("roll", "", "Roll a dice expression like 2d6+3 and exit")
	checkStat := flag.String("check", "", "Roll a d20 ability check for the given stat (STR/DEX/...)")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	// Dice rolls need no session at all
	if *rollExpr != "" {
		result := stats.RollExpression(*rollExpr)
		if result == nil {
			fmt.Fprintf(os.Stderr, "not a valid dice expression: %s\n", *rollExpr)
			os.Exit(1)
		}
		fmt.Printf("%s: rolls %v modifier %+d total %d\n", *rollExpr, result.Rolls, result.Modifier, result.Total)
		return
	}

	appConfig, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load config, using defaults", "path", *configFile, "error", err)
	}
	if *dbFile != "" {
		appConfig.DatabasePath = *dbFile
	}
	if *seedFile != "" {
		appConfig.SeedFile = *seedFile
	}

	seed := sheet.Seed()
	if appConfig.SeedFile != "" {
		loaded, err := sheet.LoadDocument(appConfig.SeedFile)
		if err != nil {
			log.Fatalf("Failed to load seed document: %v", err)
		}
		seed = loaded
	}

	db, err := database.Open(appConfig.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open archive database: %v", err)
	}
	defer db.Close()

	manager, err := archive.NewManager(db, seed, archive.WithProficiencyPolicy(appConfig.ProficiencyPolicy()))
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}

	switch {
	case *listArchives:
		printArchives(manager)

	case *snapshotName != "":
		id, err := manager.CreateSnapshot(*snapshotName)
		if err != nil {
			log.Fatalf("Failed to create snapshot: %v", err)
		}
		fmt.Printf("created snapshot %s (%s)\n", id, *snapshotName)

	case *loadID != "":
		if err := manager.LoadArchive(*loadID); err != nil {
			log.Fatalf("Failed to load archive: %v", err)
		}
		printSummary(manager)

	case *deleteID != "":
		if err := manager.DeleteArchive(*deleteID); err != nil {
			fmt.Fprintf(os.Stderr, "cannot delete archive: %v\n", err)
			os.Exit(1)
		}
		printArchives(manager)

	case *exportFile != "":
		doc := manager.Document()
		payload, err := manager.ExportJSON()
		if err != nil {
			log.Fatalf("Failed to export document: %v", err)
		}
		path := *exportFile
		if path == "-" {
			fmt.Println(payload)
			return
		}
		if path == "auto" {
			path = fmt.Sprintf("chronicle-%s.json", doc.Character.Name)
		}
		if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
			log.Fatalf("Failed to write export file: %v", err)
		}
		fmt.Printf("exported to %s\n", path)

	case *importSpells != "":
		f, err := os.Open(*importSpells)
		if err != nil {
			log.Fatalf("Failed to open spell CSV: %v", err)
		}
		spells, err := sheet.ImportSpellsCSV(f, sheet.DefaultSpellColumnMapping())
		f.Close()
		if err != nil {
			log.Fatalf("Failed to import spells: %v", err)
		}
		if err := manager.Dispatch(engine.AddSpells{Spells: spells}); err != nil {
			log.Fatalf("Failed to save imported spells: %v", err)
		}
		fmt.Printf("imported %d spells\n", len(spells))

	case *endTurn:
		dispatch(manager, engine.EndTurn{})
		printCombat(manager)

	case *castID != "":
		doc := manager.Document()
		if skill, ok := doc.Combat.Skill(*castID); ok && !skill.Ready() {
			fmt.Fprintf(os.Stderr, "%s is on cooldown (%d rounds left)\n", skill.Name, skill.CurrentCD)
			os.Exit(1)
		}
		dispatch(manager, engine.CastSkill{ID: *castID})
		printCombat(manager)

	case *resetCDs:
		dispatch(manager, engine.ResetSkills{})
		printCombat(manager)

	case *toggle != "":
		catalog := sheet.DefaultConditionCatalog()
		if appConfig.ConditionsFile != "" {
			if loaded, err := sheet.LoadConditionCatalog(appConfig.ConditionsFile); err == nil {
				catalog = loaded
			}
		}
		dispatch(manager, engine.ToggleCondition(manager.Document(), catalog, *toggle))
		printCombat(manager)

	case *undo:
		if !manager.CanUndo() {
			fmt.Println("nothing to undo")
			return
		}
		dispatch(manager, engine.Undo{})
		printSummary(manager)

	case *checkStat != "":
		derived := manager.Derived()
		key := sheet.StatKey(*checkStat)
		mod := derived.Modifier(key)
		roll, total := stats.CheckRoll(mod)
		fmt.Printf("%s check: d20(%d) %+d = %d\n", key, roll, mod, total)

	default:
		printSummary(manager)
	}
}

func dispatch(manager *archive.Manager, action engine.Action) {
	if err := manager.Dispatch(action); err != nil {
		log.Fatalf("Failed to apply action: %v", err)
	}
}

func printArchives(manager *archive.Manager) {
	active := manager.ActiveID()
	for _, arc := range manager.ListArchives() {
		marker := " "
		if arc.ID == active {
			marker = "*"
		}
		updated := time.UnixMilli(arc.LastUpdated).Format("2006-01-02 15:04:05")
		fmt.Printf("%s %-42s %-24s Lv%-3d %s\n", marker, arc.ID, arc.Name, arc.State.Character.Level, updated)
	}
}

func printSummary(manager *archive.Manager) {
	doc := manager.Document()
	derived := manager.Derived()

	fmt.Printf("%s, %s %s (level %d, PB +%d)\n",
		doc.Character.Name, doc.Character.Race, doc.Character.Class,
		doc.Character.Level, derived.ProficiencyBonus)
	fmt.Printf("HP %d/%d (+%d temp)  DC %d  AC %d\n",
		doc.Combat.HPCurrent, derived.HPMax, doc.Combat.HPTemp,
		derived.SaveDC, doc.Combat.ArmorClass(10))
	for _, k := range sheet.StatKeys {
		fmt.Printf("  %s %3d (%+d equip) mod %+d\n",
			k, derived.BaseStats[k], derived.EquipmentBonus[k], derived.Modifier(k))
	}
}

func printCombat(manager *archive.Manager) {
	doc := manager.Document()
	fmt.Printf("turn %d\n", doc.Combat.TurnCount)
	for _, s := range doc.Combat.CooldownSkills {
		if s.IsArchived {
			continue
		}
		state := "ready"
		if !s.Ready() {
			state = fmt.Sprintf("cd %d/%d", s.CurrentCD, s.BaseCD)
		}
		fmt.Printf("  skill %-20s %s\n", s.Name, state)
	}
	for _, c := range doc.Combat.Conditions {
		fmt.Printf("  condition %-16s stacks %d rounds %d\n", c.Name, c.Stacks, c.RoundsLeft)
	}
}
