package catalog

// Drill ids, referenced by arcs below and by logged training sessions.
const (
	DrillAroundWorld        DrillID = "around_world"
	DrillClosoutWalkthrough DrillID = "closeout_walkthrough"
	DrillContactFinish      DrillID = "contact_finish"
	DrillCrossoverSeries    DrillID = "crossover_series"
	DrillDefensiveSlides    DrillID = "defensive_slides"
	DrillEuroStepFinish     DrillID = "euro_step_finish"
	DrillFormShooting       DrillID = "form_shooting"
	DrillGameSpeedShooting  DrillID = "game_speed_catch_shoot"
	DrillLadderFootwork     DrillID = "ladder_footwork"
	DrillMikanSeries        DrillID = "mikan_series"
	DrillSpotShooting       DrillID = "spot_shooting"
	DrillTwoBallPound       DrillID = "two_ball_pound"
	DrillWallPassing        DrillID = "wall_passing"
)

// drills is the full library, authored in id order so that catalog order and
// id order agree (the engine relies on that for deterministic tie-breaks).
var drills = []Drill{
	{
		ID:                  DrillAroundWorld,
		Name:                "Around-the-World Dribble",
		Category:            "ballhandling",
		Intensity:           IntensityLow,
		BaseReps:            20,
		BaseDurationMinutes: 5,
	},
	{
		ID:                  DrillClosoutWalkthrough,
		Name:                "Closeout Walkthrough",
		Category:            "footwork",
		Intensity:           IntensityLow,
		BaseReps:            12,
		BaseDurationMinutes: 6,
	},
	{
		ID:                  DrillContactFinish,
		Name:                "Contact Finishing",
		Category:            "finishing",
		Intensity:           IntensityHigh,
		BaseReps:            20,
		BaseDurationMinutes: 10,
		LowVariantID:        DrillMikanSeries,
	},
	{
		ID:                  DrillCrossoverSeries,
		Name:                "Crossover Series",
		Category:            "ballhandling",
		Intensity:           IntensityModerate,
		BaseReps:            30,
		BaseDurationMinutes: 8,
	},
	{
		ID:                  DrillDefensiveSlides,
		Name:                "Defensive Slides",
		Category:            "footwork",
		Intensity:           IntensityHigh,
		BaseReps:            10,
		BaseDurationMinutes: 8,
		LowVariantID:        DrillClosoutWalkthrough,
	},
	{
		ID:                  DrillEuroStepFinish,
		Name:                "Euro-Step Finishing",
		Category:            "finishing",
		Intensity:           IntensityModerate,
		BaseReps:            16,
		BaseDurationMinutes: 10,
	},
	{
		ID:                  DrillFormShooting,
		Name:                "Form Shooting",
		Category:            "shooting",
		Intensity:           IntensityLow,
		BaseReps:            25,
		BaseDurationMinutes: 10,
	},
	{
		ID:                  DrillGameSpeedShooting,
		Name:                "Game-Speed Catch & Shoot",
		Category:            "shooting",
		Intensity:           IntensityHigh,
		BaseReps:            40,
		BaseDurationMinutes: 12,
		LowVariantID:        DrillFormShooting,
	},
	{
		ID:                  DrillLadderFootwork,
		Name:                "Ladder Footwork",
		Category:            "footwork",
		Intensity:           IntensityModerate,
		BaseReps:            6,
		BaseDurationMinutes: 8,
	},
	{
		ID:                  DrillMikanSeries,
		Name:                "Mikan Series",
		Category:            "finishing",
		Intensity:           IntensityLow,
		BaseReps:            20,
		BaseDurationMinutes: 6,
	},
	{
		ID:                  DrillSpotShooting,
		Name:                "Five-Spot Shooting",
		Category:            "shooting",
		Intensity:           IntensityModerate,
		BaseReps:            50,
		BaseDurationMinutes: 12,
	},
	{
		ID:                  DrillTwoBallPound,
		Name:                "Two-Ball Pound Dribble",
		Category:            "ballhandling",
		Intensity:           IntensityHigh,
		BaseReps:            40,
		BaseDurationMinutes: 8,
		LowVariantID:        DrillAroundWorld,
	},
	{
		ID:                  DrillWallPassing,
		Name:                "Wall Passing",
		Category:            "passing",
		Intensity:           IntensityLow,
		BaseReps:            40,
		BaseDurationMinutes: 6,
	},
}

// Game-IQ module ids.
const (
	IQHelpRotations       GameIQID = "help_rotations"
	IQPickRollReads       GameIQID = "pick_roll_reads"
	IQReadingDefenses     GameIQID = "reading_defenses"
	IQShotSelection       GameIQID = "shot_selection"
	IQSpacingBasics       GameIQID = "spacing_basics"
	IQTransitionDecisions GameIQID = "transition_decisions"
)

var gameIQModules = []GameIQModule{
	{ID: IQHelpRotations, Title: "Help-Side Rotations", Topic: "defense", DurationMinutes: 8},
	{ID: IQPickRollReads, Title: "Pick-and-Roll Reads", Topic: "offense", DurationMinutes: 10},
	{ID: IQReadingDefenses, Title: "Reading Defenses", Topic: "offense", DurationMinutes: 8},
	{ID: IQShotSelection, Title: "Shot Selection", Topic: "decision-making", DurationMinutes: 6},
	{ID: IQSpacingBasics, Title: "Spacing Basics", Topic: "offense", DurationMinutes: 6},
	{ID: IQTransitionDecisions, Title: "Transition Decisions", Topic: "decision-making", DurationMinutes: 8},
}
