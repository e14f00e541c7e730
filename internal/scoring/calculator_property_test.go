package scoring

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

var exerciseTypes = []interface{}{
	model.ExerciseCardio,
	model.ExerciseStrength,
	model.ExerciseYoga,
	model.ExerciseSports,
	model.ExerciseNone,
}

func genMedicationNames(max int) gopter.Gen {
	return gen.IntRange(0, max).Map(func(n int) []string {
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("med-%d", i)
		}
		return names
	})
}

// genDailyMetrics generates metrics inside the ranges accepted at the API boundary
func genDailyMetrics() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(0, 12),
		gen.IntRange(0, 300),
		gen.OneConstOf(exerciseTypes...),
		gen.IntRange(0, 50000),
		gen.IntRange(0, 20),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		genMedicationNames(5),
		gen.IntRange(0, 5),
	).Map(func(values []interface{}) model.DailyMetrics {
		prescribed := values[8].([]string)
		takenCount := min(values[9].(int), len(prescribed))

		return model.DailyMetrics{
			SleepHours:   values[0].(float64),
			Exercise:     model.Exercise{Minutes: values[1].(int), Type: values[2].(model.ExerciseType)},
			Steps:        values[3].(int),
			WaterGlasses: values[4].(int),
			Meals: model.Meals{
				Breakfast: values[5].(bool),
				Lunch:     values[6].(bool),
				Dinner:    values[7].(bool),
			},
			Medications: model.Medications{
				Taken:      append([]string{}, prescribed[:takenCount]...),
				Prescribed: prescribed,
			},
		}
	})
}

// Total score is bounded and always equals the sum of its components
func TestProperty_ScoreBoundsAndSum(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("0 <= total <= 100 and total == sum of components", prop.ForAll(
		func(m model.DailyMetrics) bool {
			result := ComputeScore(m)
			return result.TotalScore >= 0 &&
				result.TotalScore <= 100 &&
				result.TotalScore == result.Breakdown.Sum()
		},
		genDailyMetrics(),
	))

	properties.Property("each component stays within its weight", prop.ForAll(
		func(m model.DailyMetrics) bool {
			b := ComputeScore(m).Breakdown
			return b.Sleep >= 0 && b.Sleep <= SleepWeight &&
				b.Exercise >= 0 && b.Exercise <= ExerciseWeight &&
				b.Steps >= 0 && b.Steps <= StepsWeight &&
				b.Water >= 0 && b.Water <= WaterWeight &&
				b.Medication >= 0 && b.Medication <= MedicationWeight &&
				b.Nutrition >= 0 && b.Nutrition <= NutritionWeight
		},
		genDailyMetrics(),
	))

	properties.TestingRun(t)
}

// Identical input always produces identical output
func TestProperty_ScoreIsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("computeScore is referentially transparent", prop.ForAll(
		func(m model.DailyMetrics) bool {
			return reflect.DeepEqual(ComputeScore(m), ComputeScore(m))
		},
		genDailyMetrics(),
	))

	properties.Property("rating and color derive only from the total", prop.ForAll(
		func(m model.DailyMetrics) bool {
			result := ComputeScore(m)
			return result.Rating == RatingFor(result.TotalScore) &&
				result.Color == ColorFor(result.Rating)
		},
		genDailyMetrics(),
	))

	properties.TestingRun(t)
}

// With nothing prescribed the medication component is always full, whatever was taken
func TestProperty_MedicationFullScoreWithoutPrescriptions(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("prescribed=[] yields 20", prop.ForAll(
		func(taken []string) bool {
			return MedicationScore(model.Medications{Taken: taken, Prescribed: nil}) == MedicationWeight
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
