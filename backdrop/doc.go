// Package backdrop simulates the decorative page background: a night sky of
// twinkling stars, shooting streaks and drifting aurora glows, or columns of
// falling technology names. Scenes draw through a Surface so the same
// simulation can run on a GPU window, a terminal or a headless image.
package backdrop
