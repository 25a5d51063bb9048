package catalog

// Arc ids, in default suggestion order.
const (
	ArcFoundations     ArcID = "foundations"
	ArcBallControl     ArcID = "ball_control"
	ArcFinishingSchool ArcID = "finishing_school"
	ArcCourtVision     ArcID = "court_vision"
	ArcLockdownDefense ArcID = "lockdown_defense"
)

// arcs is the authored catalog. Slice order is the default order used when
// suggesting the next arc after a completion.
var arcs = []Arc{
	{
		ID:                      ArcFoundations,
		Title:                   "Foundations",
		Subtitle:                "Handle and form, one day at a time",
		Icon:                    "star",
		RecommendedDurationDays: 7,
		DrillIDs:                []DrillID{DrillAroundWorld, DrillCrossoverSeries, DrillFormShooting},
		GameIQIDs:               []GameIQID{IQSpacingBasics, IQShotSelection},
		Description:             "A first week of daily touches: basic handle, balanced footwork, and clean shooting form.",
		CompletionMessage:       "You built your base. Every great player started exactly here.",
	},
	{
		ID:                      ArcBallControl,
		Title:                   "Ball Control",
		Subtitle:                "Make the ball feel like part of your hand",
		Icon:                    "dribble",
		RecommendedDurationDays: 10,
		DrillIDs:                []DrillID{DrillCrossoverSeries, DrillTwoBallPound, DrillAroundWorld},
		GameIQIDs:               []GameIQID{IQReadingDefenses, IQSpacingBasics},
		Description:             "Ten days of handle work, from controlled series to two-ball challenges.",
		CompletionMessage:       "Ten days of handle work done. The ball listens to you now.",
	},
	{
		ID:                      ArcFinishingSchool,
		Title:                   "Finishing School",
		Subtitle:                "Score through traffic",
		Icon:                    "target",
		RecommendedDurationDays: 10,
		DrillIDs:                []DrillID{DrillMikanSeries, DrillEuroStepFinish, DrillContactFinish},
		GameIQIDs:               []GameIQID{IQShotSelection, IQTransitionDecisions},
		Description:             "Layups, euro-steps, and finishing through contact, building up day by day.",
		CompletionMessage:       "Finishing School complete. Those tough layups are yours now.",
	},
	{
		ID:                      ArcCourtVision,
		Title:                   "Court Vision",
		Subtitle:                "See the play before it happens",
		Icon:                    "eye",
		RecommendedDurationDays: 14,
		DrillIDs:                []DrillID{DrillWallPassing, DrillSpotShooting, DrillCrossoverSeries},
		GameIQIDs:               []GameIQID{IQReadingDefenses, IQPickRollReads, IQTransitionDecisions},
		Description:             "Two weeks mixing passing, shooting, and the reads that tie them together.",
		CompletionMessage:       "Two weeks of seeing the game differently. Your teammates will notice.",
	},
	{
		ID:                      ArcLockdownDefense,
		Title:                   "Lockdown Defense",
		Subtitle:                "Win the possessions nobody sees",
		Icon:                    "shield",
		RecommendedDurationDays: 10,
		DrillIDs:                []DrillID{DrillClosoutWalkthrough, DrillDefensiveSlides, DrillLadderFootwork},
		GameIQIDs:               []GameIQID{IQHelpRotations, IQReadingDefenses},
		Description:             "Footwork, slides, and the team-defense concepts that make stops happen.",
		CompletionMessage:       "Defense wins games, and you just leveled yours up.",
	},
}
