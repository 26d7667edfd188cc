// Package gpu runs the automaton on a WebGPU device: two storage buffers used
// in ping-pong fashion, a compute pipeline for the update rule, an instanced
// draw of one quad per cell, and an off-screen readback for capture.
//
// Everything except this file requires the gpu build tag and the wgpu-native
// library.
package gpu
