// internal/recommend/engine_test.go
package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPriceQuery(t *testing.T) {
	tests := []struct {
		inquiry  string
		expected bool
	}{
		{"What is the price?", true},
		{"How MUCH for a logo", true},
		{"what would it cost", true},
		{"any extra fees", true},
		{"my budget is small", true},
		{"do you charge monthly", true},
		{"costume design studio", true},
		{"I need a logo", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.inquiry, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPriceQuery(tt.inquiry))
		})
	}
}

func TestSelectPlan(t *testing.T) {
	tests := []struct {
		name     string
		inquiry  string
		matched  []string
		expected Plan
	}{
		{"default blueprint", "need a logo", []string{"branding"}, Blueprint},
		{"two services stays blueprint", "", []string{"a", "b"}, Blueprint},
		{"three services is authority", "", []string{"a", "b", "c"}, Authority},
		{"four services is authority", "", []string{"a", "b", "c", "d"}, Authority},
		{"five services is empire", "", []string{"a", "b", "c", "d", "e"}, Empire},
		{"authority phrase", "we need a Brand Book", []string{"branding"}, Authority},
		{"growth keyword", "focused on growth", []string{"branding"}, Authority},
		{"empire phrase", "Dedicated Project Manager please", []string{"branding"}, Empire},
		{"scale keyword", "ready to scale", []string{"branding"}, Empire},
		{"automation keyword", "automation of leads", []string{"branding"}, Empire},
		{"empire wins over authority", "brand book and 24/7 support", []string{"branding"}, Empire},
		{"scale-up counts", "a scale-up company", nil, Empire},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectPlan(tt.inquiry, tt.matched))
		})
	}
}

func TestHumanizeService(t *testing.T) {
	assert.Equal(t, "Web Design", HumanizeService("web_design"))
	assert.Equal(t, "Ui Ux Design", HumanizeService("ui_ux_design"))
	assert.Equal(t, "Seo", HumanizeService("seo"))
	assert.Equal(t, "Branding", HumanizeService("branding"))
	assert.Equal(t, "B2B Marketing", HumanizeService("b2b_marketing"))
	assert.Equal(t, "3D Modeling", HumanizeService("3d_modeling"))
	assert.Equal(t, "E-Commerce", HumanizeService("e-COMMERCE"))
}

func TestEngine_ShippedRules(t *testing.T) {
	rules, err := LoadRules("../../configs/rules.json")
	require.NoError(t, err)
	engine := NewEngine(rules)

	t.Run("logo and website is blueprint", func(t *testing.T) {
		rec := engine.Recommend("I need a logo and a website")
		require.Equal(t, OutcomePlan, rec.Outcome)
		assert.Equal(t, []string{"branding", "web_design"}, rec.Services)
		assert.Equal(t, Blueprint, *rec.Plan)
	})

	t.Run("brand book phrase is authority below three services", func(t *testing.T) {
		rec := engine.Recommend("We want full brand identity and a brand book")
		require.Equal(t, OutcomePlan, rec.Outcome)
		assert.Less(t, len(rec.Services), 3)
		assert.Equal(t, Authority, *rec.Plan)
	})
}

func TestMatchAndSelect_Repeatable(t *testing.T) {
	rules := mustRules(t, testRules)
	inquiry := "Instagram presence, a website, and a logo"

	first := rules.Match(inquiry)
	second := rules.Match(inquiry)
	assert.Equal(t, first, second)

	assert.Equal(t, SelectPlan(inquiry, first), SelectPlan(inquiry, second))
	assert.Equal(t, first, rules.Match(inquiry), "matching does not mutate the table")
}

func TestEngine_Recommend(t *testing.T) {
	engine := NewEngine(mustRules(t, testRules))

	t.Run("empty inquiry", func(t *testing.T) {
		rec := engine.Recommend("   \n\t")
		assert.Equal(t, OutcomeEmpty, rec.Outcome)
		assert.Equal(t, "Please describe your business needs so I can recommend a plan.", rec.Text)
		assert.Nil(t, rec.Plan)
	})

	t.Run("price question wins over services", func(t *testing.T) {
		rec := engine.Recommend("How much is a logo and website?")
		assert.Equal(t, OutcomePrice, rec.Outcome)
		assert.Equal(t, "You need to schedule a call with the boss for the price. You'll find a button just above for scheduling the meet.", rec.Text)
		assert.Empty(t, rec.Services)
	})

	t.Run("no services matched", func(t *testing.T) {
		rec := engine.Recommend("I want to bake bread")
		assert.Equal(t, OutcomeNoMatch, rec.Outcome)
		assert.Equal(t, "No exact plan matches your needs. You can choose to 'Customize your own Plan'.", rec.Text)
		assert.Nil(t, rec.Plan)
	})

	t.Run("single service blueprint", func(t *testing.T) {
		rec := engine.Recommend("  I need a logo  ")
		require.Equal(t, OutcomePlan, rec.Outcome)
		require.NotNil(t, rec.Plan)
		assert.Equal(t, Blueprint, *rec.Plan)
		assert.Equal(t, []string{"branding"}, rec.Services)

		expected := "Based on your needs, we recommend:\n\n" +
			"🏆 **The Blueprint Custom**\n" +
			"This plan is best for early-stage startups needing a professional launch.\n\n" +
			"It will cover your requirements for:\n" +
			"✅ Branding\n" +
			"\nWant to discuss next steps? Tap 'Schedule a Meet'."
		assert.Equal(t, expected, rec.Text)
	})

	t.Run("three services authority", func(t *testing.T) {
		rec := engine.Recommend("Instagram presence, a website, and a logo")
		require.Equal(t, OutcomePlan, rec.Outcome)
		assert.Equal(t, Authority, *rec.Plan)

		expected := "Based on your needs, we recommend:\n\n" +
			"🏆 **The Authority Custom**\n" +
			"This plan is designed for growing brands ready to dominate their niche.\n\n" +
			"It will cover your requirements for:\n" +
			"✅ Branding\n" +
			"✅ Web Design\n" +
			"✅ Social Media\n" +
			"\nWant to discuss next steps? Tap 'Schedule a Meet'."
		assert.Equal(t, expected, rec.Text)
	})

	t.Run("five services empire", func(t *testing.T) {
		rec := engine.Recommend("logo, website, instagram, ads and seo")
		require.Equal(t, OutcomePlan, rec.Outcome)
		assert.Equal(t, Empire, *rec.Plan)
		assert.Len(t, rec.Services, 5)
		assert.Contains(t, rec.Text, "🏆 **The Empire Custom**\nThis plan is ideal for businesses scaling for maximum market impact and ROI.")
	})
}
