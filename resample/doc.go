// The resample subpackage converts loaded sound effects to the mixer's
// play rate. Conversion is strictly best-effort: a sound that can't be
// resampled stays at its original rate instead of failing the load,
// since a pitch-shifted effect beats a missing one.
package resample
